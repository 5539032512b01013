package public

import (
	"time"

	"stake-market/internal/app/staking"
)

type MarketplaceResponse struct {
	Sessions []staking.SessionResponse `json:"sessions"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	TotalProfit   string `json:"total_profit"`
	TotalBuyIn    string `json:"total_buy_in"`
	WinPercentage string `json:"win_percentage"`
}

type LeaderboardResponse struct {
	Metric  string             `json:"metric"`
	Entries []LeaderboardEntry `json:"entries"`
}

type GlobalStatsResponse struct {
	CompletedSessions int64     `json:"completed_sessions"`
	TotalWinnings     string    `json:"total_winnings"`
	GeneratedAt       time.Time `json:"generated_at"`
}
