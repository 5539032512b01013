package market

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNegativeCashOut = errors.New("negative_cash_out")

// StakeView is the slice of a stake settlement needs.
type StakeView struct {
	ID           string
	BuyerID      string
	BuyerName    string
	BuyerCashTag string
	Percentage   decimal.Decimal
	Status       StakeStatus
}

// PayoutDraft is one settlement line computed in memory. The caller
// persists the whole batch atomically or not at all.
type PayoutDraft struct {
	StakeID      string
	BuyerID      string
	BuyerName    string
	BuyerCashTag string
	AmountOwed   decimal.Decimal
}

type SettleResult struct {
	Profit  decimal.Decimal
	Payouts []PayoutDraft
}

// Settle derives the payout batch for a completed session. Only stakes
// confirmed before completion earn a payout; a stake still pending owes the
// seller its purchase price but is owed nothing from the cash-out.
func Settle(totalBuyIn, cashOut decimal.Decimal, stakes []StakeView) (SettleResult, error) {
	if cashOut.IsNegative() {
		return SettleResult{}, ErrNegativeCashOut
	}
	// The session row stores cash-out at cent precision; payouts must be
	// derived from that same figure, not the raw input.
	cashOut = cashOut.Round(2)
	res := SettleResult{
		Profit:  cashOut.Sub(totalBuyIn).Round(2),
		Payouts: []PayoutDraft{},
	}
	for _, st := range stakes {
		if st.Status != StakeConfirmed {
			continue
		}
		res.Payouts = append(res.Payouts, PayoutDraft{
			StakeID:      st.ID,
			BuyerID:      st.BuyerID,
			BuyerName:    st.BuyerName,
			BuyerCashTag: st.BuyerCashTag,
			AmountOwed:   st.Percentage.Div(hundred).Mul(cashOut).Round(2),
		})
	}
	return res, nil
}
