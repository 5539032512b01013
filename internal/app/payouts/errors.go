package payouts

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrPayoutNotFound = errors.New("payout_not_found")
	ErrNotSeller      = errors.New("not_seller")
)
