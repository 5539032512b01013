package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const userColumns = `id, name, api_key_hash, cash_tag, role, subscription_status, total_profit, total_buy_in, win_percentage, version, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.APIKeyHash, &u.CashTag, &u.Role, &u.SubscriptionStatus,
		&u.TotalProfit, &u.TotalBuyIn, &u.WinPercentage, &u.Version, &u.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, name, apiKey, cashTag string) (string, error) {
	id := NewID()
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO users (id, name, api_key_hash, cash_tag) VALUES ($1,$2,$3,$4)`,
		id, name, HashAPIKey(apiKey), cashTag)
	return id, err
}

func (s *Store) GetUser(ctx context.Context, id string) (*User, error) {
	return scanUser(s.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Store) GetUserByAPIKey(ctx context.Context, apiKey string) (*User, error) {
	return scanUser(s.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE api_key_hash = $1`, HashAPIKey(apiKey)))
}

func (s *Store) UpdateUserCashTag(ctx context.Context, id, cashTag string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE users SET cash_tag = $2 WHERE id = $1`, id, cashTag)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateUserSubscriptionStatus(ctx context.Context, id, status string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE users SET subscription_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TopSellersByProfit backs the profit leaderboard. Sellers who have not
// banked a positive cumulative profit are excluded.
func (s *Store) TopSellersByProfit(ctx context.Context, limit int) ([]User, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE total_profit > 0 ORDER BY total_profit DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// TopSellersByWinRate excludes sellers who never played or whose win
// percentage collapsed to zero.
func (s *Store) TopSellersByWinRate(ctx context.Context, limit int) ([]User, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE total_buy_in > 0 AND win_percentage > 0 ORDER BY win_percentage DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]User, error) {
	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.APIKeyHash, &u.CashTag, &u.Role, &u.SubscriptionStatus,
			&u.TotalProfit, &u.TotalBuyIn, &u.WinPercentage, &u.Version, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SellerStatsUpdate is the read-modify-write payload for a seller's running
// aggregates. ExpectedVersion is the version the caller read; the update is
// rejected with ErrConflict when another settlement got there first.
type SellerStatsUpdate struct {
	UserID          string
	TotalProfit     decimal.Decimal
	TotalBuyIn      decimal.Decimal
	WinPercentage   decimal.Decimal
	ExpectedVersion int64
}
