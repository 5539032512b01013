package payouts

import "time"

type PayoutItem struct {
	PayoutID     string     `json:"payout_id"`
	SessionID    string     `json:"session_id"`
	StakeID      string     `json:"stake_id"`
	BuyerID      string     `json:"buyer_id"`
	BuyerName    string     `json:"buyer_name"`
	BuyerCashTag string     `json:"buyer_cash_tag"`
	AmountOwed   string     `json:"amount_owed"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
}

// ListResponse carries the ledger plus the total still unpaid, which is the
// number both sides actually care about.
type ListResponse struct {
	Items        []PayoutItem `json:"items"`
	PendingTotal string       `json:"pending_total"`
}

type MarkPaidResponse struct {
	PayoutID    string `json:"payout_id"`
	Status      string `json:"status"`
	AlreadyPaid bool   `json:"already_paid"`
}
