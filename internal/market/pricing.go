package market

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPercentage  = errors.New("invalid_percentage")
	ErrSharesUnavailable  = errors.New("shares_unavailable")
	ErrInvalidBuyIn       = errors.New("invalid_buy_in")
	ErrInvalidMarkup      = errors.New("invalid_markup")
	ErrInvalidShareWindow = errors.New("invalid_share_window")
)

var (
	hundred   = decimal.NewFromInt(100)
	oneExact  = decimal.NewFromInt(1)
	zeroExact = decimal.Decimal{}
)

// StakeCost prices a backer's share: buyIn x markup x pct/100, cents.
func StakeCost(totalBuyIn, markup, percentage decimal.Decimal) decimal.Decimal {
	return totalBuyIn.Mul(markup).Mul(percentage).Div(hundred).Round(2)
}

// ValidateListing checks the seller's offer before a session is created.
// Markup below 1.0 would price shares under face value, which the market
// does not allow.
func ValidateListing(totalBuyIn, markup, shares decimal.Decimal) error {
	if !totalBuyIn.IsPositive() {
		return ErrInvalidBuyIn
	}
	if markup.LessThan(oneExact) {
		return ErrInvalidMarkup
	}
	if !shares.IsPositive() || shares.GreaterThan(hundred) {
		return ErrInvalidShareWindow
	}
	return nil
}

// ValidateReservation checks a buy request against current availability.
func ValidateReservation(available, requested decimal.Decimal) error {
	if !requested.IsPositive() || requested.GreaterThan(hundred) {
		return ErrInvalidPercentage
	}
	if requested.GreaterThan(available) {
		return ErrSharesUnavailable
	}
	return nil
}
