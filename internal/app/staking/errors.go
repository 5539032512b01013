package staking

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid_request")
	ErrSessionNotFound   = errors.New("session_not_found")
	ErrStakeNotFound     = errors.New("stake_not_found")
	ErrNotSubscribed     = errors.New("not_subscribed")
	ErrNotSeller         = errors.New("not_seller")
	ErrSessionNotFunding = errors.New("session_not_funding")
	ErrSessionFinished   = errors.New("session_finished")
	ErrStakeNotPending   = errors.New("stake_not_pending")

	// ErrConflict means a concurrent writer touched the same share counter
	// first. The request can be retried as-is.
	ErrConflict = errors.New("conflict_retry")
)
