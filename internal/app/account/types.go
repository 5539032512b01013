package account

import "time"

type RegisterInput struct {
	Name    string
	CashTag string
}

type RegisterResponse struct {
	UserID  string `json:"user_id"`
	APIKey  string `json:"api_key"`
	CashTag string `json:"cash_tag"`
}

type MeResponse struct {
	UserID             string    `json:"user_id"`
	Name               string    `json:"name"`
	CashTag            string    `json:"cash_tag"`
	SubscriptionStatus string    `json:"subscription_status"`
	TotalProfit        string    `json:"total_profit"`
	TotalBuyIn         string    `json:"total_buy_in"`
	WinPercentage      string    `json:"win_percentage"`
	CreatedAt          time.Time `json:"created_at"`
}
