package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"stake-market/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// ValidCashTag enforces the only shape the platform knows how to pay:
// a Cash App tag starting with "$".
func ValidCashTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	return len(tag) > 1 && strings.HasPrefix(tag, "$")
}

func newAPIKey() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return "stk_" + hex.EncodeToString(b)
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*RegisterResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidRequest
	}
	if in.CashTag != "" && !ValidCashTag(in.CashTag) {
		return nil, ErrInvalidCashTag
	}
	apiKey := newAPIKey()
	id, err := s.store.CreateUser(ctx, strings.TrimSpace(in.Name), apiKey, strings.TrimSpace(in.CashTag))
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{UserID: id, APIKey: apiKey, CashTag: in.CashTag}, nil
}

func (s *Service) Me(ctx context.Context, user *store.User) (*MeResponse, error) {
	if user == nil {
		return nil, ErrInvalidRequest
	}
	return &MeResponse{
		UserID:             user.ID,
		Name:               user.Name,
		CashTag:            user.CashTag,
		SubscriptionStatus: user.SubscriptionStatus,
		TotalProfit:        user.TotalProfit.StringFixed(2),
		TotalBuyIn:         user.TotalBuyIn.StringFixed(2),
		WinPercentage:      user.WinPercentage.StringFixed(2),
		CreatedAt:          user.CreatedAt,
	}, nil
}

func (s *Service) UpdateCashTag(ctx context.Context, user *store.User, cashTag string) error {
	if user == nil {
		return ErrInvalidRequest
	}
	if !ValidCashTag(cashTag) {
		return ErrInvalidCashTag
	}
	return s.store.UpdateUserCashTag(ctx, user.ID, strings.TrimSpace(cashTag))
}
