package public

import (
	"context"
	"time"

	"stake-market/internal/app/staking"
	"stake-market/internal/store"
)

// Service is the unauthenticated read side: the marketplace, the
// leaderboards and the global stats banner.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Marketplace lists open sessions, newest first. status narrows the list;
// empty means everything except cancelled, which nobody browses for.
func (s *Service) Marketplace(ctx context.Context, status string, limit, offset int) (*MarketplaceResponse, error) {
	f := store.SessionFilter{Status: status}
	if status == "" {
		f.ExcludeStatus = "cancelled"
	}
	items, err := s.store.ListSessions(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &MarketplaceResponse{Sessions: make([]staking.SessionResponse, 0, len(items))}
	for i := range items {
		resp.Sessions = append(resp.Sessions, staking.NewSessionResponse(&items[i]))
	}
	return resp, nil
}

// Leaderboard ranks sellers by lifetime profit or by win rate.
func (s *Service) Leaderboard(ctx context.Context, metric string, limit int) (*LeaderboardResponse, error) {
	var (
		users []store.User
		err   error
	)
	switch metric {
	case "winrate":
		users, err = s.store.TopSellersByWinRate(ctx, limit)
	default:
		metric = "profit"
		users, err = s.store.TopSellersByProfit(ctx, limit)
	}
	if err != nil {
		return nil, err
	}
	resp := &LeaderboardResponse{Metric: metric, Entries: make([]LeaderboardEntry, 0, len(users))}
	for i, u := range users {
		resp.Entries = append(resp.Entries, LeaderboardEntry{
			Rank:          i + 1,
			UserID:        u.ID,
			Name:          u.Name,
			TotalProfit:   u.TotalProfit.StringFixed(2),
			TotalBuyIn:    u.TotalBuyIn.StringFixed(2),
			WinPercentage: u.WinPercentage.StringFixed(2),
		})
	}
	return resp, nil
}

func (s *Service) GlobalStats(ctx context.Context) (*GlobalStatsResponse, error) {
	g, err := s.store.GetGlobalStats(ctx)
	if err != nil {
		return nil, err
	}
	return &GlobalStatsResponse{
		CompletedSessions: g.CompletedSessions,
		TotalWinnings:     g.TotalWinnings.StringFixed(2),
		GeneratedAt:       time.Now().UTC(),
	}, nil
}
