package payouts

import (
	"context"
	"errors"

	"stake-market/internal/store"

	"github.com/shopspring/decimal"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// OwedToBuyer lists payouts the caller is waiting to receive.
func (s *Service) OwedToBuyer(ctx context.Context, buyer *store.User, limit, offset int) (*ListResponse, error) {
	if buyer == nil {
		return nil, ErrInvalidRequest
	}
	items, err := s.store.ListPayoutsByBuyer(ctx, buyer.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	return listResponse(items), nil
}

// OwedBySeller lists payouts the caller still has to send out.
func (s *Service) OwedBySeller(ctx context.Context, seller *store.User, limit, offset int) (*ListResponse, error) {
	if seller == nil {
		return nil, ErrInvalidRequest
	}
	items, err := s.store.ListPayoutsBySeller(ctx, seller.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	return listResponse(items), nil
}

// MarkPaid records that the seller sent the money. Paying twice is a no-op
// and says so in the response.
func (s *Service) MarkPaid(ctx context.Context, seller *store.User, payoutID string) (*MarkPaidResponse, error) {
	if seller == nil || payoutID == "" {
		return nil, ErrInvalidRequest
	}
	p, err := s.store.GetPayout(ctx, payoutID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, err
	}
	if p.SellerID != seller.ID {
		return nil, ErrNotSeller
	}
	already, err := s.store.MarkPayoutPaid(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &MarkPaidResponse{PayoutID: p.ID, Status: "paid", AlreadyPaid: already}, nil
}

func listResponse(items []store.Payout) *ListResponse {
	resp := &ListResponse{Items: make([]PayoutItem, 0, len(items))}
	pending := decimal.Decimal{}
	for _, p := range items {
		if p.Status == "pending" {
			pending = pending.Add(p.AmountOwed)
		}
		resp.Items = append(resp.Items, PayoutItem{
			PayoutID:     p.ID,
			SessionID:    p.SessionID,
			StakeID:      p.StakeID,
			BuyerID:      p.BuyerID,
			BuyerName:    p.BuyerName,
			BuyerCashTag: p.BuyerCashTag,
			AmountOwed:   p.AmountOwed.StringFixed(2),
			Status:       p.Status,
			CreatedAt:    p.CreatedAt,
			PaidAt:       p.PaidAt,
		})
	}
	resp.PendingTotal = pending.StringFixed(2)
	return resp
}
