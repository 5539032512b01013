package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const stakeColumns = `id, session_id, buyer_id, buyer_name, buyer_cash_tag, percentage, amount_paid, status, created_at, confirmed_at`

func scanStake(row pgx.Row) (*Stake, error) {
	var st Stake
	err := row.Scan(&st.ID, &st.SessionID, &st.BuyerID, &st.BuyerName, &st.BuyerCashTag,
		&st.Percentage, &st.AmountPaid, &st.Status, &st.CreatedAt, &st.ConfirmedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &st, nil
}

func (s *Store) GetStake(ctx context.Context, id string) (*Stake, error) {
	return scanStake(s.Pool.QueryRow(ctx, `SELECT `+stakeColumns+` FROM stakes WHERE id = $1`, id))
}

// StakeFilter narrows ListStakes. Zero values mean "no constraint".
type StakeFilter struct {
	SessionID string
	BuyerID   string
	SellerID  string
	Status    string
}

func (s *Store) ListStakes(ctx context.Context, f StakeFilter) ([]Stake, error) {
	where := "WHERE 1=1"
	args := []any{}
	if f.SessionID != "" {
		args = append(args, f.SessionID)
		where += fmt.Sprintf(" AND st.session_id = $%d", len(args))
	}
	if f.BuyerID != "" {
		args = append(args, f.BuyerID)
		where += fmt.Sprintf(" AND st.buyer_id = $%d", len(args))
	}
	if f.SellerID != "" {
		args = append(args, f.SellerID)
		where += fmt.Sprintf(" AND st.session_id IN (SELECT id FROM sessions WHERE seller_id = $%d)", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND st.status = $%d", len(args))
	}
	q := `SELECT ` + stakeColumnsPrefixed + ` FROM stakes st ` + where + ` ORDER BY st.created_at ASC`
	rows, err := s.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Stake{}
	for rows.Next() {
		var st Stake
		if err := rows.Scan(&st.ID, &st.SessionID, &st.BuyerID, &st.BuyerName, &st.BuyerCashTag,
			&st.Percentage, &st.AmountPaid, &st.Status, &st.CreatedAt, &st.ConfirmedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

const stakeColumnsPrefixed = `st.id, st.session_id, st.buyer_id, st.buyer_name, st.buyer_cash_tag, st.percentage, st.amount_paid, st.status, st.created_at, st.confirmed_at`

// ConfirmStake is the seller's pending -> confirmed attestation. A stake
// already confirmed is left untouched and reported as such so the caller
// can treat the call as idempotent.
func (s *Store) ConfirmStake(ctx context.Context, id string) (alreadyConfirmed bool, err error) {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE stakes SET status = 'confirmed', confirmed_at = now() WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}
	st, err := s.GetStake(ctx, id)
	if err != nil {
		return false, err
	}
	if st.Status == "confirmed" {
		return true, nil
	}
	return false, ErrConflict
}

// ListExpiredPendingStakes returns pending reservations created before the
// cutoff whose session is still funding. The expiry sweeper releases them.
func (s *Store) ListExpiredPendingStakes(ctx context.Context, cutoff time.Time) ([]Stake, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+stakeColumnsPrefixed+`
		FROM stakes st
		JOIN sessions se ON se.id = st.session_id
		WHERE st.status = 'pending' AND se.status = 'funding' AND st.created_at < $1
		ORDER BY st.created_at ASC`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Stake{}
	for rows.Next() {
		var st Stake
		if err := rows.Scan(&st.ID, &st.SessionID, &st.BuyerID, &st.BuyerName, &st.BuyerCashTag,
			&st.Percentage, &st.AmountPaid, &st.Status, &st.CreatedAt, &st.ConfirmedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
