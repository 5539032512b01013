package market

import "github.com/shopspring/decimal"

// SellerStats are the running aggregates shown on the leaderboards.
type SellerStats struct {
	TotalProfit   decimal.Decimal
	TotalBuyIn    decimal.Decimal
	WinPercentage decimal.Decimal
}

// Apply folds one completed session into the aggregates. The win percentage
// is profit over buy-in, and it collapses to zero the moment cumulative
// profit is not strictly positive. That is the historical definition the
// leaderboards were built on, so it stays.
func (s SellerStats) Apply(sessionBuyIn, profit decimal.Decimal) SellerStats {
	next := SellerStats{
		TotalProfit: s.TotalProfit.Add(profit).Round(2),
		TotalBuyIn:  s.TotalBuyIn.Add(sessionBuyIn).Round(2),
	}
	if next.TotalProfit.IsPositive() && next.TotalBuyIn.IsPositive() {
		next.WinPercentage = next.TotalProfit.Div(next.TotalBuyIn).Mul(hundred).Round(2)
	} else {
		next.WinPercentage = zeroExact
	}
	return next
}
