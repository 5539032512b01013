package subscriptions

import (
	"context"
	"errors"
	"testing"

	"stake-market/internal/config"
	"stake-market/internal/store"
)

func TestNewServicePriceParsing(t *testing.T) {
	svc := NewService(nil, config.ServerConfig{SubscriptionPriceUSD: "4.99", OwnerCashTag: "$owner"})
	if svc.price.StringFixed(2) != "4.99" {
		t.Fatalf("price = %s, want 4.99", svc.price)
	}
	if svc.payTo != "$owner" {
		t.Fatalf("payTo = %q, want $owner", svc.payTo)
	}

	// Garbage in the env var falls back to the default fee.
	svc = NewService(nil, config.ServerConfig{SubscriptionPriceUSD: "cheap"})
	if svc.price.StringFixed(2) != "1.99" {
		t.Fatalf("fallback price = %s, want 1.99", svc.price)
	}
}

func TestRequestGates(t *testing.T) {
	svc := NewService(nil, config.ServerConfig{SubscriptionPriceUSD: "1.99"})
	ctx := context.Background()

	if _, err := svc.Request(ctx, nil, ""); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("nil user err = %v, want %v", err, ErrInvalidRequest)
	}
	active := &store.User{ID: "u1", SubscriptionStatus: "active"}
	if _, err := svc.Request(ctx, active, ""); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("active user err = %v, want %v", err, ErrAlreadyActive)
	}
	inactive := &store.User{ID: "u2", SubscriptionStatus: "inactive"}
	if _, err := svc.Request(ctx, inactive, "notag"); !errors.Is(err, ErrInvalidCashTag) {
		t.Fatalf("bad cash tag err = %v, want %v", err, ErrInvalidCashTag)
	}
	if _, err := svc.Request(ctx, &store.User{ID: "u3"}, ""); !errors.Is(err, ErrInvalidCashTag) {
		t.Fatalf("no cash tag on file err = %v, want %v", err, ErrInvalidCashTag)
	}
}
