package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SettlementWrite is everything completing a session persists. The payout
// batch, the session's final figures and the seller's new aggregates commit
// in one transaction: on any failure none of it lands, so a retry can never
// double-settle.
type SettlementWrite struct {
	SessionID string
	CashOut   decimal.Decimal
	Profit    decimal.Decimal
	Payouts   []Payout
	Stats     SellerStatsUpdate
}

// CompleteSession commits a settlement. The active -> completed flip is a
// compare-and-swap on status, so a second invocation (or a concurrent one)
// fails with ErrConflict before any payout is written.
func (s *Store) CompleteSession(ctx context.Context, w SettlementWrite) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE sessions
		SET status = 'completed', cash_out = $2, profit = $3, completed_at = now(), version = version + 1
		WHERE id = $1 AND status = 'active'`,
		w.SessionID, w.CashOut, w.Profit)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	for _, p := range w.Payouts {
		if err := insertPayout(ctx, tx, p); err != nil {
			return err
		}
	}

	tag, err = tx.Exec(ctx, `
		UPDATE users
		SET total_profit = $2, total_buy_in = $3, win_percentage = $4, version = version + 1
		WHERE id = $1 AND version = $5`,
		w.Stats.UserID, w.Stats.TotalProfit, w.Stats.TotalBuyIn, w.Stats.WinPercentage, w.Stats.ExpectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return tx.Commit(ctx)
}

// GlobalStats aggregates the completed corpus for the public stats page.
type GlobalStats struct {
	CompletedSessions int64
	TotalWinnings     decimal.Decimal
}

func (s *Store) GetGlobalStats(ctx context.Context) (*GlobalStats, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT COUNT(1), COALESCE(SUM(cash_out), 0) FROM sessions WHERE status = 'completed'`)
	var g GlobalStats
	if err := row.Scan(&g.CompletedSessions, &g.TotalWinnings); err != nil {
		return nil, err
	}
	return &g, nil
}
