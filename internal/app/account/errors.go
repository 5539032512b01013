package account

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInvalidCashTag = errors.New("invalid_cash_tag")
)
