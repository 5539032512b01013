package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const payoutColumns = `id, session_id, stake_id, buyer_id, buyer_name, buyer_cash_tag, seller_id, amount_owed, status, created_at, paid_at`

func (s *Store) GetPayout(ctx context.Context, id string) (*Payout, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE id = $1`, id)
	var p Payout
	err := row.Scan(&p.ID, &p.SessionID, &p.StakeID, &p.BuyerID, &p.BuyerName, &p.BuyerCashTag,
		&p.SellerID, &p.AmountOwed, &p.Status, &p.CreatedAt, &p.PaidAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (s *Store) ListPayoutsByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]Payout, error) {
	return s.listPayouts(ctx, `buyer_id`, buyerID, limit, offset)
}

func (s *Store) ListPayoutsBySeller(ctx context.Context, sellerID string, limit, offset int) ([]Payout, error) {
	return s.listPayouts(ctx, `seller_id`, sellerID, limit, offset)
}

func (s *Store) listPayouts(ctx context.Context, column, id string, limit, offset int) ([]Payout, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT `+payoutColumns+` FROM payouts WHERE `+column+` = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		id, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Payout{}
	for rows.Next() {
		var p Payout
		if err := rows.Scan(&p.ID, &p.SessionID, &p.StakeID, &p.BuyerID, &p.BuyerName, &p.BuyerCashTag,
			&p.SellerID, &p.AmountOwed, &p.Status, &p.CreatedAt, &p.PaidAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkPayoutPaid is the seller's pending -> paid attestation, idempotent in
// the same way ConfirmStake is.
func (s *Store) MarkPayoutPaid(ctx context.Context, id string) (alreadyPaid bool, err error) {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE payouts SET status = 'paid', paid_at = now() WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}
	p, err := s.GetPayout(ctx, id)
	if err != nil {
		return false, err
	}
	return p.Status == "paid", nil
}

func insertPayout(ctx context.Context, tx pgx.Tx, p Payout) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO payouts (id, session_id, stake_id, buyer_id, buyer_name, buyer_cash_tag, seller_id, amount_owed, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'pending')`,
		p.ID, p.SessionID, p.StakeID, p.BuyerID, p.BuyerName, p.BuyerCashTag, p.SellerID, p.AmountOwed)
	return err
}
