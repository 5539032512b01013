package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appaccount "stake-market/internal/app/account"
	appsettlement "stake-market/internal/app/settlement"
	appstaking "stake-market/internal/app/staking"
	"stake-market/internal/market"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type SessionHandlers struct {
	staking    *appstaking.Service
	settlement *appsettlement.Service
}

func NewSessionHandlers(staking *appstaking.Service, settlement *appsettlement.Service) *SessionHandlers {
	return &SessionHandlers{staking: staking, settlement: settlement}
}

func (h *SessionHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body struct {
			Platform    string          `json:"platform"`
			Description string          `json:"description"`
			CashTag     string          `json:"cash_tag"`
			TotalBuyIn  decimal.Decimal `json:"total_buy_in"`
			Markup      decimal.Decimal `json:"markup"`
			Shares      decimal.Decimal `json:"shares_available"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.staking.CreateSession(r.Context(), user, appstaking.CreateSessionInput{
			Platform:    body.Platform,
			Description: body.Description,
			CashTag:     body.CashTag,
			TotalBuyIn:  body.TotalBuyIn,
			Markup:      body.Markup,
			Shares:      body.Shares,
		})
		if err != nil {
			writeStakingError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *SessionHandlers) Mine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		limit, offset := ParsePagination(r)
		items, err := h.staking.SellerSessions(r.Context(), user, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"sessions": items, "limit": limit, "offset": offset})
	}
}

func (h *SessionHandlers) Start() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := h.staking.Start(r.Context(), user, chi.URLParam(r, "session_id")); err != nil {
			writeStakingError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "status": "active"})
	}
}

func (h *SessionHandlers) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := h.staking.Cancel(r.Context(), user, chi.URLParam(r, "session_id")); err != nil {
			writeStakingError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "status": "cancelled"})
	}
}

func (h *SessionHandlers) Complete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		// A pointer keeps "cash_out": 0 (a bust) distinct from the field
		// being absent. Settling a session is irreversible, so an omitted
		// cash-out is rejected rather than read as zero.
		var body struct {
			CashOut *decimal.Decimal `json:"cash_out"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.CashOut == nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		metricSessionCompleteTotal.Add(1)
		resp, err := h.settlement.Complete(r.Context(), user, chi.URLParam(r, "session_id"), *body.CashOut)
		if err != nil {
			metricSessionCompleteErrors.Add(1)
			switch {
			case errors.Is(err, appsettlement.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, market.ErrNegativeCashOut):
				WriteHTTPError(w, http.StatusBadRequest, "negative_cash_out")
			case errors.Is(err, appsettlement.ErrSessionNotFound):
				WriteHTTPError(w, http.StatusNotFound, "session_not_found")
			case errors.Is(err, appsettlement.ErrNotSeller):
				WriteHTTPError(w, http.StatusForbidden, "not_seller")
			case errors.Is(err, appsettlement.ErrSessionNotActive):
				WriteHTTPError(w, http.StatusConflict, "session_not_active")
			case errors.Is(err, appsettlement.ErrConflict):
				WriteHTTPError(w, http.StatusConflict, "conflict_retry")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func writeStakingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appstaking.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, appaccount.ErrInvalidCashTag):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_cash_tag")
	case errors.Is(err, market.ErrInvalidBuyIn):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_buy_in")
	case errors.Is(err, market.ErrInvalidMarkup):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_markup")
	case errors.Is(err, market.ErrInvalidShareWindow):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_share_window")
	case errors.Is(err, market.ErrInvalidPercentage):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_percentage")
	case errors.Is(err, market.ErrSharesUnavailable):
		WriteHTTPError(w, http.StatusConflict, "shares_unavailable")
	case errors.Is(err, appstaking.ErrNotSubscribed):
		WriteHTTPError(w, http.StatusPaymentRequired, "subscription_required")
	case errors.Is(err, appstaking.ErrSessionNotFound):
		WriteHTTPError(w, http.StatusNotFound, "session_not_found")
	case errors.Is(err, appstaking.ErrStakeNotFound):
		WriteHTTPError(w, http.StatusNotFound, "stake_not_found")
	case errors.Is(err, appstaking.ErrNotSeller):
		WriteHTTPError(w, http.StatusForbidden, "not_seller")
	case errors.Is(err, appstaking.ErrSessionNotFunding):
		WriteHTTPError(w, http.StatusConflict, "session_not_funding")
	case errors.Is(err, appstaking.ErrSessionFinished):
		WriteHTTPError(w, http.StatusConflict, "session_finished")
	case errors.Is(err, appstaking.ErrStakeNotPending):
		WriteHTTPError(w, http.StatusConflict, "stake_not_pending")
	case errors.Is(err, appstaking.ErrConflict):
		WriteHTTPError(w, http.StatusConflict, "conflict_retry")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
