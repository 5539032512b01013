package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const sessionColumns = `id, seller_id, seller_name, seller_cash_tag, platform, description, total_buy_in, markup, available_shares, status, cash_out, profit, version, created_at, completed_at`

func scanSession(row pgx.Row) (*Session, error) {
	var sess Session
	err := row.Scan(&sess.ID, &sess.SellerID, &sess.SellerName, &sess.SellerCashTag, &sess.Platform,
		&sess.Description, &sess.TotalBuyIn, &sess.Markup, &sess.AvailableShares, &sess.Status,
		&sess.CashOut, &sess.Profit, &sess.Version, &sess.CreatedAt, &sess.CompletedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &sess, nil
}

func (s *Store) CreateSession(ctx context.Context, sess Session) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO sessions (id, seller_id, seller_name, seller_cash_tag, platform, description, total_buy_in, markup, available_shares, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		sess.ID, sess.SellerID, sess.SellerName, sess.SellerCashTag, sess.Platform,
		sess.Description, sess.TotalBuyIn, sess.Markup, sess.AvailableShares, sess.Status)
	return err
}

func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	return scanSession(s.Pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
}

// SessionFilter narrows ListSessions. Zero values mean "no constraint".
type SessionFilter struct {
	SellerID      string
	Status        string
	ExcludeStatus string
}

func (s *Store) ListSessions(ctx context.Context, f SessionFilter, limit, offset int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	where := "WHERE 1=1"
	args := []any{}
	if f.SellerID != "" {
		args = append(args, f.SellerID)
		where += fmt.Sprintf(" AND seller_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.ExcludeStatus != "" {
		args = append(args, f.ExcludeStatus)
		where += fmt.Sprintf(" AND status <> $%d", len(args))
	}
	args = append(args, limit, offset)
	q := `SELECT ` + sessionColumns + ` FROM sessions ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := s.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Session{}
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.SellerID, &sess.SellerName, &sess.SellerCashTag, &sess.Platform,
			&sess.Description, &sess.TotalBuyIn, &sess.Markup, &sess.AvailableShares, &sess.Status,
			&sess.CashOut, &sess.Profit, &sess.Version, &sess.CreatedAt, &sess.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// TransitionSession flips a session's lifecycle status as a compare-and-swap
// on the current status. Zero rows means the session either does not exist
// or is no longer in `from`; callers distinguish via a follow-up read.
func (s *Store) TransitionSession(ctx context.Context, id, from, to string) error {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE sessions SET status = $3, version = version + 1 WHERE id = $1 AND status = $2`,
		id, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

// ReserveStake atomically decrements a funding session's availability and
// records the pending stake. The version check is the optimistic guard
// against two buyers racing for the same shares; the status and availability
// predicates back it up so the counter can never go negative even if the
// caller's read was stale.
func (s *Store) ReserveStake(ctx context.Context, stake Stake, expectedVersion int64) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE sessions
		SET available_shares = available_shares - $2, version = version + 1
		WHERE id = $1 AND version = $3 AND status = 'funding' AND available_shares >= $2`,
		stake.SessionID, stake.Percentage, expectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO stakes (id, session_id, buyer_id, buyer_name, buyer_cash_tag, percentage, amount_paid, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,'pending')`,
		stake.ID, stake.SessionID, stake.BuyerID, stake.BuyerName, stake.BuyerCashTag,
		stake.Percentage, stake.AmountPaid); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReleaseStake voids a pending stake and, while the session is still
// funding, returns its percentage to the pool. `to` is cancelled or expired.
func (s *Store) ReleaseStake(ctx context.Context, stakeID, to string) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var sessionID string
	var percentage decimal.Decimal
	row := tx.QueryRow(ctx, `
		UPDATE stakes SET status = $2 WHERE id = $1 AND status = 'pending'
		RETURNING session_id, percentage`,
		stakeID, to)
	if err := row.Scan(&sessionID, &percentage); err != nil {
		return mapNotFound(err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE sessions
		SET available_shares = available_shares + $2, version = version + 1
		WHERE id = $1 AND status = 'funding'`,
		sessionID, percentage); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
