package market

import "errors"

var ErrIllegalTransition = errors.New("illegal_transition")

type SessionStatus string

const (
	SessionFunding   SessionStatus = "funding"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

type StakeStatus string

const (
	StakePending   StakeStatus = "pending"
	StakeConfirmed StakeStatus = "confirmed"
	StakeCancelled StakeStatus = "cancelled"
	StakeExpired   StakeStatus = "expired"
)

type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutPaid    PayoutStatus = "paid"
)

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionFunding: {SessionActive, SessionCancelled},
	SessionActive:  {SessionCompleted, SessionCancelled},
}

var stakeTransitions = map[StakeStatus][]StakeStatus{
	StakePending: {StakeConfirmed, StakeCancelled, StakeExpired},
}

var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutPending: {PayoutPaid},
}

func (s SessionStatus) CanTransition(to SessionStatus) bool {
	return contains(sessionTransitions[s], to)
}

func (s SessionStatus) Terminal() bool {
	return len(sessionTransitions[s]) == 0
}

func (s StakeStatus) CanTransition(to StakeStatus) bool {
	return contains(stakeTransitions[s], to)
}

func (s PayoutStatus) CanTransition(to PayoutStatus) bool {
	return contains(payoutTransitions[s], to)
}

func contains[T comparable](list []T, v T) bool {
	for _, it := range list {
		if it == v {
			return true
		}
	}
	return false
}
