package subscriptions

import (
	"context"
	"errors"

	"stake-market/internal/app/account"
	"stake-market/internal/config"
	"stake-market/internal/store"

	"github.com/shopspring/decimal"
)

// Service runs the manual-review subscription gate. Payment moves over Cash
// App outside the system; the operator approves or rejects each request
// after checking the money actually arrived.
type Service struct {
	store *store.Store
	price decimal.Decimal
	payTo string
}

func NewService(st *store.Store, cfg config.ServerConfig) *Service {
	price, err := decimal.NewFromString(cfg.SubscriptionPriceUSD)
	if err != nil {
		price = decimal.NewFromFloat(1.99)
	}
	return &Service{store: st, price: price, payTo: cfg.OwnerCashTag}
}

func (s *Service) Request(ctx context.Context, user *store.User, cashTag string) (*RequestResponse, error) {
	if user == nil {
		return nil, ErrInvalidRequest
	}
	if user.Subscribed() {
		return nil, ErrAlreadyActive
	}
	if cashTag == "" {
		cashTag = user.CashTag
	}
	if !account.ValidCashTag(cashTag) {
		return nil, ErrInvalidCashTag
	}

	last, err := s.store.LatestSubscriptionByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if last != nil && last.Status == "pending" {
		return nil, ErrAlreadyPending
	}

	if cashTag != user.CashTag {
		if err := s.store.UpdateUserCashTag(ctx, user.ID, cashTag); err != nil {
			return nil, err
		}
	}

	sub := store.Subscription{
		ID:        store.NewID(),
		UserID:    user.ID,
		UserName:  user.Name,
		CashTag:   cashTag,
		AmountUSD: s.price,
		Status:    "pending",
	}
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	if err := s.store.UpdateUserSubscriptionStatus(ctx, user.ID, "pending"); err != nil {
		return nil, err
	}
	return &RequestResponse{
		SubscriptionID: sub.ID,
		Status:         sub.Status,
		AmountUSD:      s.price.StringFixed(2),
		PayTo:          s.payTo,
	}, nil
}

func (s *Service) Approve(ctx context.Context, id string) error {
	return s.resolve(ctx, id, "active", "active")
}

func (s *Service) Reject(ctx context.Context, id string) error {
	return s.resolve(ctx, id, "rejected", "inactive")
}

func (s *Service) resolve(ctx context.Context, id, subStatus, userStatus string) error {
	if id == "" {
		return ErrInvalidRequest
	}
	err := s.store.ResolveSubscription(ctx, id, subStatus, userStatus)
	if errors.Is(err, store.ErrNotFound) {
		return ErrRequestNotFound
	}
	return err
}

func (s *Service) Pending(ctx context.Context, limit, offset int) (*PendingResponse, error) {
	items, err := s.store.ListSubscriptionsByStatus(ctx, "pending", limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]PendingItem, 0, len(items))
	for _, it := range items {
		out = append(out, PendingItem{
			SubscriptionID: it.ID,
			UserID:         it.UserID,
			UserName:       it.UserName,
			CashTag:        it.CashTag,
			AmountUSD:      it.AmountUSD.StringFixed(2),
			CreatedAt:      it.CreatedAt,
		})
	}
	return &PendingResponse{Items: out}, nil
}
