package payouts

import (
	"testing"
	"time"

	"stake-market/internal/store"

	"github.com/shopspring/decimal"
)

func TestListResponseTotalsPendingOnly(t *testing.T) {
	paidAt := time.Now()
	items := []store.Payout{
		{ID: "p1", AmountOwed: decimal.NewFromFloat(120.00), Status: "pending"},
		{ID: "p2", AmountOwed: decimal.NewFromFloat(36.66), Status: "pending"},
		{ID: "p3", AmountOwed: decimal.NewFromFloat(50.00), Status: "paid", PaidAt: &paidAt},
	}
	resp := listResponse(items)
	if resp.PendingTotal != "156.66" {
		t.Fatalf("PendingTotal = %q, want 156.66", resp.PendingTotal)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(resp.Items))
	}
	if resp.Items[2].PaidAt == nil {
		t.Fatal("paid item should carry paid_at")
	}
}

func TestListResponseEmpty(t *testing.T) {
	resp := listResponse(nil)
	if resp.PendingTotal != "0.00" {
		t.Fatalf("PendingTotal = %q, want 0.00", resp.PendingTotal)
	}
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Fatalf("Items = %v, want empty non-nil slice", resp.Items)
	}
}
