package market

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStakeCost(t *testing.T) {
	tests := []struct {
		name    string
		buyIn   string
		markup  string
		pct     string
		want    string
	}{
		{name: "ten percent of 500 at 1.2", buyIn: "500", markup: "1.2", pct: "10", want: "60"},
		{name: "no markup", buyIn: "100", markup: "1.0", pct: "50", want: "50"},
		{name: "full session", buyIn: "250", markup: "1.5", pct: "100", want: "375"},
		{name: "rounds to cents", buyIn: "100", markup: "1.1", pct: "33.33", want: "36.66"},
		{name: "one percent", buyIn: "19.99", markup: "1.25", pct: "1", want: "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StakeCost(dec(tt.buyIn), dec(tt.markup), dec(tt.pct))
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("StakeCost = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValidateListing(t *testing.T) {
	if err := ValidateListing(dec("500"), dec("1.2"), dec("100")); err != nil {
		t.Fatalf("valid listing rejected: %v", err)
	}
	if err := ValidateListing(dec("0"), dec("1.2"), dec("100")); !errors.Is(err, ErrInvalidBuyIn) {
		t.Fatalf("zero buy-in: got %v", err)
	}
	if err := ValidateListing(dec("500"), dec("0.9"), dec("100")); !errors.Is(err, ErrInvalidMarkup) {
		t.Fatalf("markup below 1.0: got %v", err)
	}
	if err := ValidateListing(dec("500"), dec("1.2"), dec("101")); !errors.Is(err, ErrInvalidShareWindow) {
		t.Fatalf("shares over 100: got %v", err)
	}
	if err := ValidateListing(dec("500"), dec("1.2"), dec("0")); !errors.Is(err, ErrInvalidShareWindow) {
		t.Fatalf("zero shares: got %v", err)
	}
}

func TestValidateReservation(t *testing.T) {
	tests := []struct {
		name      string
		available string
		requested string
		wantErr   error
	}{
		{name: "exact fit", available: "40", requested: "40"},
		{name: "partial", available: "40", requested: "5"},
		{name: "over available", available: "40", requested: "41", wantErr: ErrSharesUnavailable},
		{name: "zero", available: "40", requested: "0", wantErr: ErrInvalidPercentage},
		{name: "negative", available: "40", requested: "-5", wantErr: ErrInvalidPercentage},
		{name: "over hundred", available: "100", requested: "101", wantErr: ErrInvalidPercentage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReservation(dec(tt.available), dec(tt.requested))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
