package market

import "testing"

func TestSessionTransitions(t *testing.T) {
	tests := []struct {
		from SessionStatus
		to   SessionStatus
		ok   bool
	}{
		{SessionFunding, SessionActive, true},
		{SessionFunding, SessionCancelled, true},
		{SessionFunding, SessionCompleted, false},
		{SessionActive, SessionCompleted, true},
		{SessionActive, SessionCancelled, true},
		{SessionActive, SessionFunding, false},
		{SessionCompleted, SessionCancelled, false},
		{SessionCancelled, SessionFunding, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.ok {
			t.Fatalf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	if !SessionCompleted.Terminal() || !SessionCancelled.Terminal() {
		t.Fatal("completed and cancelled must be terminal")
	}
	if SessionFunding.Terminal() || SessionActive.Terminal() {
		t.Fatal("funding and active must not be terminal")
	}
}

func TestStakeTransitions(t *testing.T) {
	if !StakePending.CanTransition(StakeConfirmed) {
		t.Fatal("pending -> confirmed must be legal")
	}
	if !StakePending.CanTransition(StakeExpired) {
		t.Fatal("pending -> expired must be legal")
	}
	if StakeConfirmed.CanTransition(StakePending) {
		t.Fatal("confirmed stakes never reopen")
	}
	if StakeConfirmed.CanTransition(StakeCancelled) {
		t.Fatal("confirmed stakes cannot be cancelled")
	}
}

func TestPayoutTransitions(t *testing.T) {
	if !PayoutPending.CanTransition(PayoutPaid) {
		t.Fatal("pending -> paid must be legal")
	}
	if PayoutPaid.CanTransition(PayoutPending) {
		t.Fatal("paid payouts never reopen")
	}
}
