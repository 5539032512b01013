package settlement

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid_request")
	ErrSessionNotFound  = errors.New("session_not_found")
	ErrNotSeller        = errors.New("not_seller")
	ErrSessionNotActive = errors.New("session_not_active")

	// ErrConflict means the seller's aggregates moved under us mid-settle.
	// Safe to retry; the payout batch never landed.
	ErrConflict = errors.New("conflict_retry")
)
