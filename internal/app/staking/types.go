package staking

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateSessionInput struct {
	Platform    string
	Description string
	CashTag     string
	TotalBuyIn  decimal.Decimal
	Markup      decimal.Decimal
	Shares      decimal.Decimal
}

type SessionResponse struct {
	SessionID       string     `json:"session_id"`
	SellerID        string     `json:"seller_id"`
	SellerName      string     `json:"seller_name"`
	SellerCashTag   string     `json:"seller_cash_tag"`
	Platform        string     `json:"platform"`
	Description     string     `json:"description,omitempty"`
	TotalBuyIn      string     `json:"total_buy_in"`
	Markup          string     `json:"markup"`
	AvailableShares string     `json:"available_shares"`
	Status          string     `json:"status"`
	CashOut         *string    `json:"cash_out,omitempty"`
	Profit          *string    `json:"profit,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type StakeResponse struct {
	StakeID      string    `json:"stake_id"`
	SessionID    string    `json:"session_id"`
	BuyerID      string    `json:"buyer_id"`
	BuyerName    string    `json:"buyer_name"`
	BuyerCashTag string    `json:"buyer_cash_tag"`
	Percentage   string    `json:"percentage"`
	AmountPaid   string    `json:"amount_paid"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReserveResponse tells the backer what to send and where.
type ReserveResponse struct {
	Stake         StakeResponse `json:"stake"`
	SellerCashTag string        `json:"seller_cash_tag"`
	AmountDue     string        `json:"amount_due"`
}
