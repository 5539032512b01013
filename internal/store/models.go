package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID                 string
	Name               string
	APIKeyHash         string
	CashTag            string
	Role               string
	SubscriptionStatus string
	TotalProfit        decimal.Decimal
	TotalBuyIn         decimal.Decimal
	WinPercentage      decimal.Decimal
	Version            int64
	CreatedAt          time.Time
}

// Subscribed reports whether the user cleared the manual payment review and
// may buy or sell action.
func (u *User) Subscribed() bool {
	return u.SubscriptionStatus == "active"
}

type Subscription struct {
	ID        string
	UserID    string
	UserName  string
	CashTag   string
	AmountUSD decimal.Decimal
	Status    string
	CreatedAt time.Time
}

type Session struct {
	ID              string
	SellerID        string
	SellerName      string
	SellerCashTag   string
	Platform        string
	Description     string
	TotalBuyIn      decimal.Decimal
	Markup          decimal.Decimal
	AvailableShares decimal.Decimal
	Status          string
	CashOut         decimal.NullDecimal
	Profit          decimal.NullDecimal
	Version         int64
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

type Stake struct {
	ID           string
	SessionID    string
	BuyerID      string
	BuyerName    string
	BuyerCashTag string
	Percentage   decimal.Decimal
	AmountPaid   decimal.Decimal
	Status       string
	CreatedAt    time.Time
	ConfirmedAt  *time.Time
}

type Payout struct {
	ID           string
	SessionID    string
	StakeID      string
	BuyerID      string
	BuyerName    string
	BuyerCashTag string
	SellerID     string
	AmountOwed   decimal.Decimal
	Status       string
	CreatedAt    time.Time
	PaidAt       *time.Time
}
