package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stake-market/internal/store"
	"stake-market/internal/testutil"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func createSubscribedUser(t *testing.T, st *store.Store, name, apiKey string) *store.User {
	t.Helper()
	ctx := context.Background()
	id, err := st.CreateUser(ctx, name, apiKey, "$"+name)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := st.UpdateUserSubscriptionStatus(ctx, id, "active"); err != nil {
		t.Fatalf("activate user: %v", err)
	}
	u, err := st.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	return u
}

func createFundingSession(t *testing.T, st *store.Store, seller *store.User) *store.Session {
	t.Helper()
	ctx := context.Background()
	sess := store.Session{
		ID:              store.NewID(),
		SellerID:        seller.ID,
		SellerName:      seller.Name,
		SellerCashTag:   seller.CashTag,
		Platform:        "Stake.us",
		TotalBuyIn:      dec("100.00"),
		Markup:          dec("1.2"),
		AvailableShares: dec("50"),
		Status:          "funding",
	}
	if err := st.CreateSession(ctx, sess); err != nil {
		t.Fatalf("create session: %v", err)
	}
	created, err := st.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	return created
}

func reservePending(t *testing.T, st *store.Store, sess *store.Session, buyer *store.User, pct, paid string) *store.Stake {
	t.Helper()
	ctx := context.Background()
	stake := store.Stake{
		ID:           store.NewID(),
		SessionID:    sess.ID,
		BuyerID:      buyer.ID,
		BuyerName:    buyer.Name,
		BuyerCashTag: buyer.CashTag,
		Percentage:   dec(pct),
		AmountPaid:   dec(paid),
		Status:       "pending",
	}
	if err := st.ReserveStake(ctx, stake, sess.Version); err != nil {
		t.Fatalf("reserve stake: %v", err)
	}
	created, err := st.GetStake(ctx, stake.ID)
	if err != nil {
		t.Fatalf("get stake: %v", err)
	}
	return created
}

func TestUserAuthRoundTrip(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := st.CreateUser(ctx, "alice", "stk_test_key", "$alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	u, err := st.GetUserByAPIKey(ctx, "stk_test_key")
	if err != nil {
		t.Fatalf("get by api key: %v", err)
	}
	if u.ID != id || u.Name != "alice" || u.CashTag != "$alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.SubscriptionStatus != "inactive" {
		t.Fatalf("new user subscription = %q, want inactive", u.SubscriptionStatus)
	}
	if _, err := st.GetUserByAPIKey(ctx, "stk_wrong"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("wrong key err = %v, want ErrNotFound", err)
	}
}

func TestReserveStakeDecrementsShares(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seller := createSubscribedUser(t, st, "seller", "stk_seller")
	buyer := createSubscribedUser(t, st, "buyer", "stk_buyer")
	sess := createFundingSession(t, st, seller)

	reservePending(t, st, sess, buyer, "20", "24.00")

	after, err := st.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if !after.AvailableShares.Equal(dec("30")) {
		t.Fatalf("available shares = %s, want 30", after.AvailableShares)
	}
	if after.Version != sess.Version+1 {
		t.Fatalf("version = %d, want %d", after.Version, sess.Version+1)
	}
}

func TestReserveStakeStaleVersionConflicts(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()

	seller := createSubscribedUser(t, st, "seller", "stk_seller")
	buyer := createSubscribedUser(t, st, "buyer", "stk_buyer")
	sess := createFundingSession(t, st, seller)

	reservePending(t, st, sess, buyer, "20", "24.00")

	// Second writer still holds the pre-reservation version.
	stale := store.Stake{
		ID:         store.NewID(),
		SessionID:  sess.ID,
		BuyerID:    buyer.ID,
		Percentage: dec("10"),
		AmountPaid: dec("12.00"),
		Status:     "pending",
	}
	err := st.ReserveStake(context.Background(), stale, sess.Version)
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("stale reserve err = %v, want ErrConflict", err)
	}
}

func TestReserveStakeOverAvailabilityConflicts(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()

	seller := createSubscribedUser(t, st, "seller", "stk_seller")
	buyer := createSubscribedUser(t, st, "buyer", "stk_buyer")
	sess := createFundingSession(t, st, seller)

	over := store.Stake{
		ID:         store.NewID(),
		SessionID:  sess.ID,
		BuyerID:    buyer.ID,
		Percentage: dec("80"),
		AmountPaid: dec("96.00"),
		Status:     "pending",
	}
	err := st.ReserveStake(context.Background(), over, sess.Version)
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("over-availability reserve err = %v, want ErrConflict", err)
	}
}

func TestConfirmStakeIdempotent(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seller := createSubscribedUser(t, st, "seller", "stk_seller")
	buyer := createSubscribedUser(t, st, "buyer", "stk_buyer")
	sess := createFundingSession(t, st, seller)
	stake := reservePending(t, st, sess, buyer, "20", "24.00")

	already, err := st.ConfirmStake(ctx, stake.ID)
	if err != nil || already {
		t.Fatalf("first confirm = (%v, %v), want (false, nil)", already, err)
	}
	already, err = st.ConfirmStake(ctx, stake.ID)
	if err != nil || !already {
		t.Fatalf("second confirm = (%v, %v), want (true, nil)", already, err)
	}
	got, err := st.GetStake(ctx, stake.ID)
	if err != nil {
		t.Fatalf("get stake: %v", err)
	}
	if got.Status != "confirmed" || got.ConfirmedAt == nil {
		t.Fatalf("stake after confirm = %+v", got)
	}
}

func TestReleaseStakeRestoresShares(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seller := createSubscribedUser(t, st, "seller", "stk_seller")
	buyer := createSubscribedUser(t, st, "buyer", "stk_buyer")
	sess := createFundingSession(t, st, seller)
	stake := reservePending(t, st, sess, buyer, "20", "24.00")

	if err := st.ReleaseStake(ctx, stake.ID, "cancelled"); err != nil {
		t.Fatalf("release: %v", err)
	}
	after, err := st.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if !after.AvailableShares.Equal(dec("50")) {
		t.Fatalf("available shares = %s, want 50", after.AvailableShares)
	}
	got, _ := st.GetStake(ctx, stake.ID)
	if got.Status != "cancelled" {
		t.Fatalf("stake status = %q, want cancelled", got.Status)
	}

	// Releasing a non-pending stake reports not found.
	if err := st.ReleaseStake(ctx, stake.ID, "expired"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second release err = %v, want ErrNotFound", err)
	}
}

func TestCompleteSessionWritesSettlementOnce(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seller := createSubscribedUser(t, st, "seller", "stk_seller")
	buyer := createSubscribedUser(t, st, "buyer", "stk_buyer")
	sess := createFundingSession(t, st, seller)
	stake := reservePending(t, st, sess, buyer, "40", "48.00")
	if _, err := st.ConfirmStake(ctx, stake.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := st.TransitionSession(ctx, sess.ID, "funding", "active"); err != nil {
		t.Fatalf("start: %v", err)
	}

	write := store.SettlementWrite{
		SessionID: sess.ID,
		CashOut:   dec("300.00"),
		Profit:    dec("200.00"),
		Payouts: []store.Payout{{
			ID:           store.NewID(),
			SessionID:    sess.ID,
			StakeID:      stake.ID,
			BuyerID:      buyer.ID,
			BuyerName:    buyer.Name,
			BuyerCashTag: buyer.CashTag,
			SellerID:     seller.ID,
			AmountOwed:   dec("120.00"),
			Status:       "pending",
		}},
		Stats: store.SellerStatsUpdate{
			UserID:          seller.ID,
			TotalProfit:     dec("200.00"),
			TotalBuyIn:      dec("100.00"),
			WinPercentage:   dec("200.00"),
			ExpectedVersion: seller.Version,
		},
	}
	if err := st.CompleteSession(ctx, write); err != nil {
		t.Fatalf("complete: %v", err)
	}

	after, err := st.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if after.Status != "completed" || !after.CashOut.Valid || !after.CashOut.Decimal.Equal(dec("300.00")) {
		t.Fatalf("session after complete = %+v", after)
	}
	if after.CompletedAt == nil {
		t.Fatal("completed_at not set")
	}

	owed, err := st.ListPayoutsByBuyer(ctx, buyer.ID, 10, 0)
	if err != nil || len(owed) != 1 {
		t.Fatalf("payouts = %v (err %v), want 1", owed, err)
	}
	if !owed[0].AmountOwed.Equal(dec("120.00")) || owed[0].Status != "pending" {
		t.Fatalf("payout = %+v", owed[0])
	}

	updatedSeller, err := st.GetUser(ctx, seller.ID)
	if err != nil {
		t.Fatalf("get seller: %v", err)
	}
	if !updatedSeller.TotalProfit.Equal(dec("200.00")) || updatedSeller.Version != seller.Version+1 {
		t.Fatalf("seller stats = %+v", updatedSeller)
	}

	// A second completion hits the status CAS and writes nothing.
	if err := st.CompleteSession(ctx, write); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("second complete err = %v, want ErrConflict", err)
	}
	owed, _ = st.ListPayoutsByBuyer(ctx, buyer.ID, 10, 0)
	if len(owed) != 1 {
		t.Fatalf("payouts after retry = %d, want 1", len(owed))
	}
}

func TestCompleteSessionStaleStatsRollsBack(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seller := createSubscribedUser(t, st, "seller", "stk_seller")
	sess := createFundingSession(t, st, seller)
	if err := st.TransitionSession(ctx, sess.ID, "funding", "active"); err != nil {
		t.Fatalf("start: %v", err)
	}

	write := store.SettlementWrite{
		SessionID: sess.ID,
		CashOut:   dec("50.00"),
		Profit:    dec("-50.00"),
		Stats: store.SellerStatsUpdate{
			UserID:          seller.ID,
			TotalProfit:     dec("-50.00"),
			TotalBuyIn:      dec("100.00"),
			WinPercentage:   dec("0"),
			ExpectedVersion: seller.Version + 7,
		},
	}
	if err := st.CompleteSession(ctx, write); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("stale stats err = %v, want ErrConflict", err)
	}
	after, err := st.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if after.Status != "active" {
		t.Fatalf("session status = %q, want active after rollback", after.Status)
	}
}

func TestMarkPayoutPaidIdempotent(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seller := createSubscribedUser(t, st, "seller", "stk_seller")
	buyer := createSubscribedUser(t, st, "buyer", "stk_buyer")
	sess := createFundingSession(t, st, seller)
	stake := reservePending(t, st, sess, buyer, "40", "48.00")
	if _, err := st.ConfirmStake(ctx, stake.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := st.TransitionSession(ctx, sess.ID, "funding", "active"); err != nil {
		t.Fatalf("start: %v", err)
	}
	payoutID := store.NewID()
	write := store.SettlementWrite{
		SessionID: sess.ID,
		CashOut:   dec("300.00"),
		Profit:    dec("200.00"),
		Payouts: []store.Payout{{
			ID: payoutID, SessionID: sess.ID, StakeID: stake.ID,
			BuyerID: buyer.ID, SellerID: seller.ID, AmountOwed: dec("120.00"), Status: "pending",
		}},
		Stats: store.SellerStatsUpdate{
			UserID: seller.ID, TotalProfit: dec("200.00"), TotalBuyIn: dec("100.00"),
			WinPercentage: dec("200.00"), ExpectedVersion: seller.Version,
		},
	}
	if err := st.CompleteSession(ctx, write); err != nil {
		t.Fatalf("complete: %v", err)
	}

	already, err := st.MarkPayoutPaid(ctx, payoutID)
	if err != nil || already {
		t.Fatalf("first paid = (%v, %v), want (false, nil)", already, err)
	}
	already, err = st.MarkPayoutPaid(ctx, payoutID)
	if err != nil || !already {
		t.Fatalf("second paid = (%v, %v), want (true, nil)", already, err)
	}
	p, _ := st.GetPayout(ctx, payoutID)
	if p.Status != "paid" || p.PaidAt == nil {
		t.Fatalf("payout after paid = %+v", p)
	}
}

func TestSubscriptionResolveFlow(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := st.CreateUser(ctx, "carol", "stk_carol", "$carol")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	sub := store.Subscription{
		ID:        store.NewID(),
		UserID:    id,
		UserName:  "carol",
		CashTag:   "$carol",
		AmountUSD: dec("1.99"),
		Status:    "pending",
	}
	if err := st.CreateSubscription(ctx, sub); err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	if err := st.UpdateUserSubscriptionStatus(ctx, id, "pending"); err != nil {
		t.Fatalf("mark pending: %v", err)
	}

	pending, err := st.ListSubscriptionsByStatus(ctx, "pending", 10, 0)
	if err != nil || len(pending) != 1 {
		t.Fatalf("pending = %v (err %v), want 1", pending, err)
	}

	if err := st.ResolveSubscription(ctx, sub.ID, "active", "active"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	u, _ := st.GetUser(ctx, id)
	if u.SubscriptionStatus != "active" {
		t.Fatalf("user subscription = %q, want active", u.SubscriptionStatus)
	}
	resolved, err := st.GetSubscription(ctx, sub.ID)
	if err != nil {
		t.Fatalf("get subscription: %v", err)
	}
	if resolved.Status != "active" {
		t.Fatalf("subscription status = %q, want active", resolved.Status)
	}

	// Resolving twice finds no pending row.
	if err := st.ResolveSubscription(ctx, sub.ID, "active", "active"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second resolve err = %v, want ErrNotFound", err)
	}
}

func TestListExpiredPendingStakes(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seller := createSubscribedUser(t, st, "seller", "stk_seller")
	buyer := createSubscribedUser(t, st, "buyer", "stk_buyer")
	sess := createFundingSession(t, st, seller)
	stake := reservePending(t, st, sess, buyer, "20", "24.00")

	stale, err := st.ListExpiredPendingStakes(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("list expired: %v", err)
	}
	if len(stale) != 0 {
		t.Fatalf("fresh stake should not be expired, got %d", len(stale))
	}

	stale, err = st.ListExpiredPendingStakes(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("list expired: %v", err)
	}
	if len(stale) != 1 || stale[0].ID != stake.ID {
		t.Fatalf("expired = %v, want the pending stake", stale)
	}
}

func TestGlobalStatsCountsCompletedOnly(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seller := createSubscribedUser(t, st, "seller", "stk_seller")
	sess := createFundingSession(t, st, seller)
	if err := st.TransitionSession(ctx, sess.ID, "funding", "active"); err != nil {
		t.Fatalf("start: %v", err)
	}
	write := store.SettlementWrite{
		SessionID: sess.ID,
		CashOut:   dec("250.00"),
		Profit:    dec("150.00"),
		Stats: store.SellerStatsUpdate{
			UserID: seller.ID, TotalProfit: dec("150.00"), TotalBuyIn: dec("100.00"),
			WinPercentage: dec("150.00"), ExpectedVersion: seller.Version,
		},
	}
	if err := st.CompleteSession(ctx, write); err != nil {
		t.Fatalf("complete: %v", err)
	}
	createFundingSession(t, st, seller)

	g, err := st.GetGlobalStats(ctx)
	if err != nil {
		t.Fatalf("global stats: %v", err)
	}
	if g.CompletedSessions != 1 || !g.TotalWinnings.Equal(dec("250.00")) {
		t.Fatalf("global stats = %+v", g)
	}

	top, err := st.TopSellersByProfit(ctx, 10)
	if err != nil || len(top) != 1 || top[0].ID != seller.ID {
		t.Fatalf("top sellers = %v (err %v)", top, err)
	}
}
