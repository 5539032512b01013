package subscriptions

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrInvalidCashTag  = errors.New("invalid_cash_tag")
	ErrAlreadyPending  = errors.New("subscription_already_pending")
	ErrAlreadyActive   = errors.New("subscription_already_active")
	ErrRequestNotFound = errors.New("subscription_not_found")
)
