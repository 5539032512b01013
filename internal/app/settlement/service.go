package settlement

import (
	"context"
	"errors"

	"stake-market/internal/market"
	"stake-market/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Complete settles an active session at the reported cash-out. Every
// confirmed backer gets a payout of their exact percentage of the cash-out,
// the session records its profit and the seller's aggregates fold the result
// in. All of it lands in one transaction or none of it does.
func (s *Service) Complete(ctx context.Context, seller *store.User, sessionID string, cashOut decimal.Decimal) (*CompleteResponse, error) {
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
	if market.SessionStatus(sess.Status) != market.SessionActive {
		return nil, ErrSessionNotActive
	}

	stakes, err := s.store.ListStakes(ctx, store.StakeFilter{SessionID: sess.ID})
	if err != nil {
		return nil, err
	}
	views := make([]market.StakeView, 0, len(stakes))
	for _, st := range stakes {
		views = append(views, market.StakeView{
			ID:           st.ID,
			BuyerID:      st.BuyerID,
			BuyerName:    st.BuyerName,
			BuyerCashTag: st.BuyerCashTag,
			Percentage:   st.Percentage,
			Status:       market.StakeStatus(st.Status),
		})
	}
	result, err := market.Settle(sess.TotalBuyIn, cashOut, views)
	if err != nil {
		return nil, err
	}

	// Re-read the seller for a fresh version; the authenticated copy may
	// predate another settlement.
	current, err := s.store.GetUser(ctx, seller.ID)
	if err != nil {
		return nil, err
	}
	stats := market.SellerStats{
		TotalProfit:   current.TotalProfit,
		TotalBuyIn:    current.TotalBuyIn,
		WinPercentage: current.WinPercentage,
	}.Apply(sess.TotalBuyIn, result.Profit)

	write := store.SettlementWrite{
		SessionID: sess.ID,
		CashOut:   cashOut.Round(2),
		Profit:    result.Profit,
		Payouts:   make([]store.Payout, 0, len(result.Payouts)),
		Stats: store.SellerStatsUpdate{
			UserID:          current.ID,
			TotalProfit:     stats.TotalProfit,
			TotalBuyIn:      stats.TotalBuyIn,
			WinPercentage:   stats.WinPercentage,
			ExpectedVersion: current.Version,
		},
	}
	resp := &CompleteResponse{
		SessionID: sess.ID,
		CashOut:   write.CashOut.StringFixed(2),
		Profit:    write.Profit.StringFixed(2),
		Payouts:   make([]PayoutLine, 0, len(result.Payouts)),
	}
	for _, d := range result.Payouts {
		p := store.Payout{
			ID:           store.NewID(),
			SessionID:    sess.ID,
			StakeID:      d.StakeID,
			BuyerID:      d.BuyerID,
			BuyerName:    d.BuyerName,
			BuyerCashTag: d.BuyerCashTag,
			SellerID:     sess.SellerID,
			AmountOwed:   d.AmountOwed,
			Status:       string(market.PayoutPending),
		}
		write.Payouts = append(write.Payouts, p)
		resp.Payouts = append(resp.Payouts, PayoutLine{
			PayoutID:     p.ID,
			StakeID:      p.StakeID,
			BuyerID:      p.BuyerID,
			BuyerName:    p.BuyerName,
			BuyerCashTag: p.BuyerCashTag,
			AmountOwed:   p.AmountOwed.StringFixed(2),
		})
	}

	if err := s.store.CompleteSession(ctx, write); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, s.classifyConflict(ctx, sess.ID)
		}
		return nil, err
	}
	log.Info().
		Str("session_id", sess.ID).
		Str("cash_out", resp.CashOut).
		Str("profit", resp.Profit).
		Int("payouts", len(resp.Payouts)).
		Msg("session settled")
	return resp, nil
}

// classifyConflict separates "someone already completed it" from "the stats
// row moved, try again". The status CAS and the version CAS both surface as
// the same store error.
func (s *Service) classifyConflict(ctx context.Context, sessionID string) error {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return ErrConflict
	}
	if market.SessionStatus(sess.Status) != market.SessionActive {
		return ErrSessionNotActive
	}
	return ErrConflict
}
