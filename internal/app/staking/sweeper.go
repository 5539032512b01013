package staking

import (
	"context"
	"errors"
	"time"

	"stake-market/internal/market"
	"stake-market/internal/store"

	"github.com/rs/zerolog/log"
)

// ExpirePendingStakes releases every pending reservation older than maxAge
// whose session is still funding. Returns how many were expired.
func (s *Service) ExpirePendingStakes(ctx context.Context, now time.Time, maxAge time.Duration) (int, error) {
	stale, err := s.store.ListExpiredPendingStakes(ctx, now.Add(-maxAge))
	if err != nil {
		return 0, err
	}
	released := 0
	for i := range stale {
		err := s.store.ReleaseStake(ctx, stale[i].ID, string(market.StakeExpired))
		if err != nil {
			// Raced with a confirm or cancel; skip it.
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return released, err
		}
		log.Info().
			Str("stake_id", stale[i].ID).
			Str("session_id", stale[i].SessionID).
			Msg("expired pending stake")
		released++
	}
	return released, nil
}

// StartSweeper runs the expiry pass on a ticker until ctx is cancelled.
// maxAge <= 0 disables expiry entirely and no goroutine is started.
func (s *Service) StartSweeper(ctx context.Context, interval, maxAge time.Duration) {
	if maxAge <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if _, err := s.ExpirePendingStakes(ctx, now, maxAge); err != nil {
					log.Warn().Err(err).Msg("stake expiry sweep failed")
				}
			}
		}
	}()
}
