package staking

import (
	"context"
	"errors"
	"strings"

	"stake-market/internal/app/account"
	"stake-market/internal/market"
	"stake-market/internal/store"

	"github.com/shopspring/decimal"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// CreateSession lists a seller's buy-in for fractional backing. Selling
// action is subscriber-only, same as buying it.
func (s *Service) CreateSession(ctx context.Context, seller *store.User, in CreateSessionInput) (*SessionResponse, error) {
	if seller == nil {
		return nil, ErrInvalidRequest
	}
	if !seller.Subscribed() {
		return nil, ErrNotSubscribed
	}
	if strings.TrimSpace(in.Platform) == "" {
		return nil, ErrInvalidRequest
	}
	cashTag := in.CashTag
	if cashTag == "" {
		cashTag = seller.CashTag
	}
	if !account.ValidCashTag(cashTag) {
		return nil, account.ErrInvalidCashTag
	}
	if err := market.ValidateListing(in.TotalBuyIn, in.Markup, in.Shares); err != nil {
		return nil, err
	}
	if cashTag != seller.CashTag {
		if err := s.store.UpdateUserCashTag(ctx, seller.ID, cashTag); err != nil {
			return nil, err
		}
	}

	sess := store.Session{
		ID:              store.NewID(),
		SellerID:        seller.ID,
		SellerName:      seller.Name,
		SellerCashTag:   cashTag,
		Platform:        strings.TrimSpace(in.Platform),
		Description:     strings.TrimSpace(in.Description),
		TotalBuyIn:      in.TotalBuyIn.Round(2),
		Markup:          in.Markup,
		AvailableShares: in.Shares,
		Status:          string(market.SessionFunding),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	created, err := s.store.GetSession(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	resp := NewSessionResponse(created)
	return &resp, nil
}

// Reserve buys requestedPct of a funding session for the backer. The share
// decrement happens now, while the stake is still unpaid, so the same
// percentage can never be sold twice; the flip side is that an abandoned
// reservation holds shares until the seller cancels it or the sweeper
// expires it.
func (s *Service) Reserve(ctx context.Context, buyer *store.User, sessionID string, requestedPct decimal.Decimal) (*ReserveResponse, error) {
	if buyer == nil || sessionID == "" {
		return nil, ErrInvalidRequest
	}
	if !buyer.Subscribed() {
		return nil, ErrNotSubscribed
	}
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if market.SessionStatus(sess.Status) != market.SessionFunding {
		return nil, ErrSessionNotFunding
	}
	if err := market.ValidateReservation(sess.AvailableShares, requestedPct); err != nil {
		return nil, err
	}

	cost := market.StakeCost(sess.TotalBuyIn, sess.Markup, requestedPct)
	stake := store.Stake{
		ID:           store.NewID(),
		SessionID:    sess.ID,
		BuyerID:      buyer.ID,
		BuyerName:    buyer.Name,
		BuyerCashTag: buyer.CashTag,
		Percentage:   requestedPct,
		AmountPaid:   cost,
		Status:       string(market.StakePending),
	}
	if err := s.store.ReserveStake(ctx, stake, sess.Version); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}
	created, err := s.store.GetStake(ctx, stake.ID)
	if err != nil {
		return nil, err
	}
	return &ReserveResponse{
		Stake:         NewStakeResponse(created),
		SellerCashTag: sess.SellerCashTag,
		AmountDue:     cost.StringFixed(2),
	}, nil
}

// Confirm is the seller's attestation that a backer's payment arrived.
// Confirming twice is a no-op.
func (s *Service) Confirm(ctx context.Context, seller *store.User, stakeID string) (*StakeResponse, error) {
	stake, err := s.ownedStake(ctx, seller, stakeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.ConfirmStake(ctx, stake.ID); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrStakeNotPending
		}
		return nil, err
	}
	updated, err := s.store.GetStake(ctx, stake.ID)
	if err != nil {
		return nil, err
	}
	resp := NewStakeResponse(updated)
	return &resp, nil
}

// CancelStake releases a pending reservation back to the pool. This is the
// seller's lever against a backer who reserved shares and never paid.
func (s *Service) CancelStake(ctx context.Context, seller *store.User, stakeID string) error {
	stake, err := s.ownedStake(ctx, seller, stakeID)
	if err != nil {
		return err
	}
	if market.StakeStatus(stake.Status) != market.StakePending {
		return ErrStakeNotPending
	}
	if err := s.store.ReleaseStake(ctx, stake.ID, string(market.StakeCancelled)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrStakeNotPending
		}
		return err
	}
	return nil
}

// Start closes the funding window. No further shares can be sold; existing
// reservations keep whatever state they are in.
func (s *Service) Start(ctx context.Context, seller *store.User, sessionID string) error {
	sess, err := s.ownedSession(ctx, seller, sessionID)
	if err != nil {
		return err
	}
	if !market.SessionStatus(sess.Status).CanTransition(market.SessionActive) {
		return ErrSessionNotFunding
	}
	err = s.store.TransitionSession(ctx, sess.ID, sess.Status, string(market.SessionActive))
	if errors.Is(err, store.ErrConflict) {
		return ErrSessionNotFunding
	}
	return err
}

// Cancel kills a session before completion. Open stakes stay on record but
// are dead with the session; nothing is owed either way.
func (s *Service) Cancel(ctx context.Context, seller *store.User, sessionID string) error {
	sess, err := s.ownedSession(ctx, seller, sessionID)
	if err != nil {
		return err
	}
	if !market.SessionStatus(sess.Status).CanTransition(market.SessionCancelled) {
		return ErrSessionFinished
	}
	err = s.store.TransitionSession(ctx, sess.ID, sess.Status, string(market.SessionCancelled))
	if errors.Is(err, store.ErrConflict) {
		return ErrSessionFinished
	}
	return err
}

func (s *Service) Session(ctx context.Context, sessionID string) (*SessionResponse, []StakeResponse, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	stakes, err := s.store.ListStakes(ctx, store.StakeFilter{SessionID: sess.ID})
	if err != nil {
		return nil, nil, err
	}
	resp := NewSessionResponse(sess)
	out := make([]StakeResponse, 0, len(stakes))
	for i := range stakes {
		out = append(out, NewStakeResponse(&stakes[i]))
	}
	return &resp, out, nil
}

func (s *Service) SellerSessions(ctx context.Context, seller *store.User, limit, offset int) ([]SessionResponse, error) {
	if seller == nil {
		return nil, ErrInvalidRequest
	}
	items, err := s.store.ListSessions(ctx, store.SessionFilter{SellerID: seller.ID}, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]SessionResponse, 0, len(items))
	for i := range items {
		out = append(out, NewSessionResponse(&items[i]))
	}
	return out, nil
}

func (s *Service) SellerStakes(ctx context.Context, seller *store.User, status string) ([]StakeResponse, error) {
	if seller == nil {
		return nil, ErrInvalidRequest
	}
	stakes, err := s.store.ListStakes(ctx, store.StakeFilter{SellerID: seller.ID, Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]StakeResponse, 0, len(stakes))
	for i := range stakes {
		out = append(out, NewStakeResponse(&stakes[i]))
	}
	return out, nil
}

// BuyerStakes lists the stakes the caller has bought into, newest session
// activity last.
func (s *Service) BuyerStakes(ctx context.Context, buyer *store.User, status string) ([]StakeResponse, error) {
	if buyer == nil {
		return nil, ErrInvalidRequest
	}
	stakes, err := s.store.ListStakes(ctx, store.StakeFilter{BuyerID: buyer.ID, Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]StakeResponse, 0, len(stakes))
	for i := range stakes {
		out = append(out, NewStakeResponse(&stakes[i]))
	}
	return out, nil
}

func (s *Service) ownedSession(ctx context.Context, seller *store.User, sessionID string) (*store.Session, error) {
	if seller == nil || sessionID == "" {
		return nil, ErrInvalidRequest
	}
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if sess.SellerID != seller.ID {
		return nil, ErrNotSeller
	}
	return sess, nil
}

func (s *Service) ownedStake(ctx context.Context, seller *store.User, stakeID string) (*store.Stake, error) {
	if seller == nil || stakeID == "" {
		return nil, ErrInvalidRequest
	}
	stake, err := s.store.GetStake(ctx, stakeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrStakeNotFound
		}
		return nil, err
	}
	sess, err := s.store.GetSession(ctx, stake.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.SellerID != seller.ID {
		return nil, ErrNotSeller
	}
	return stake, nil
}

// NewSessionResponse renders a stored session for the API. Money fields come
// out as fixed two-decimal strings.
func NewSessionResponse(sess *store.Session) SessionResponse {
	resp := SessionResponse{
		SessionID:       sess.ID,
		SellerID:        sess.SellerID,
		SellerName:      sess.SellerName,
		SellerCashTag:   sess.SellerCashTag,
		Platform:        sess.Platform,
		Description:     sess.Description,
		TotalBuyIn:      sess.TotalBuyIn.StringFixed(2),
		Markup:          sess.Markup.String(),
		AvailableShares: sess.AvailableShares.String(),
		Status:          sess.Status,
		CreatedAt:       sess.CreatedAt,
		CompletedAt:     sess.CompletedAt,
	}
	if sess.CashOut.Valid {
		v := sess.CashOut.Decimal.StringFixed(2)
		resp.CashOut = &v
	}
	if sess.Profit.Valid {
		v := sess.Profit.Decimal.StringFixed(2)
		resp.Profit = &v
	}
	return resp
}

func NewStakeResponse(st *store.Stake) StakeResponse {
	return StakeResponse{
		StakeID:      st.ID,
		SessionID:    st.SessionID,
		BuyerID:      st.BuyerID,
		BuyerName:    st.BuyerName,
		BuyerCashTag: st.BuyerCashTag,
		Percentage:   st.Percentage.String(),
		AmountPaid:   st.AmountPaid.StringFixed(2),
		Status:       st.Status,
		CreatedAt:    st.CreatedAt,
	}
}
