package subscriptions

import "time"

type RequestResponse struct {
	SubscriptionID string `json:"subscription_id"`
	Status         string `json:"status"`
	AmountUSD      string `json:"amount_usd"`
	PayTo          string `json:"pay_to"`
}

type PendingItem struct {
	SubscriptionID string    `json:"subscription_id"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name"`
	CashTag        string    `json:"cash_tag"`
	AmountUSD      string    `json:"amount_usd"`
	CreatedAt      time.Time `json:"created_at"`
}

type PendingResponse struct {
	Items []PendingItem `json:"items"`
}
