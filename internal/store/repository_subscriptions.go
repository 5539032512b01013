package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const subscriptionColumns = `id, user_id, user_name, cash_tag, amount_usd, status, created_at`

func scanSubscription(row pgx.Row) (*Subscription, error) {
	var sub Subscription
	err := row.Scan(&sub.ID, &sub.UserID, &sub.UserName, &sub.CashTag, &sub.AmountUSD, &sub.Status, &sub.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &sub, nil
}

func (s *Store) CreateSubscription(ctx context.Context, sub Subscription) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO subscriptions (id, user_id, user_name, cash_tag, amount_usd, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		sub.ID, sub.UserID, sub.UserName, sub.CashTag, sub.AmountUSD, sub.Status)
	return err
}

func (s *Store) GetSubscription(ctx context.Context, id string) (*Subscription, error) {
	return scanSubscription(s.Pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id))
}

// LatestSubscriptionByUser returns the user's newest request, or ErrNotFound
// if they never asked.
func (s *Store) LatestSubscriptionByUser(ctx context.Context, userID string) (*Subscription, error) {
	return scanSubscription(s.Pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID))
}

func (s *Store) ListSubscriptionsByStatus(ctx context.Context, status string, limit, offset int) ([]Subscription, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Subscription{}
	for rows.Next() {
		var sub Subscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.UserName, &sub.CashTag, &sub.AmountUSD, &sub.Status, &sub.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// ResolveSubscription settles a pending request (approve or reject) and
// flips the user's subscription flag in the same transaction.
func (s *Store) ResolveSubscription(ctx context.Context, id, subStatus, userStatus string) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID string
	row := tx.QueryRow(ctx,
		`UPDATE subscriptions SET status = $2 WHERE id = $1 AND status = 'pending' RETURNING user_id`,
		id, subStatus)
	if err := row.Scan(&userID); err != nil {
		return mapNotFound(err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE users SET subscription_status = $2 WHERE id = $1`, userID, userStatus); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
