package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appstaking "stake-market/internal/app/staking"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type StakeHandlers struct {
	staking *appstaking.Service
}

func NewStakeHandlers(staking *appstaking.Service) *StakeHandlers {
	return &StakeHandlers{staking: staking}
}

func (h *StakeHandlers) Reserve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body struct {
			Percentage decimal.Decimal `json:"percentage"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		metricStakeReserveTotal.Add(1)
		resp, err := h.staking.Reserve(r.Context(), user, chi.URLParam(r, "session_id"), body.Percentage)
		if err != nil {
			if errors.Is(err, appstaking.ErrConflict) {
				metricStakeReserveConflicts.Add(1)
			} else {
				metricStakeReserveErrors.Add(1)
			}
			writeStakingError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *StakeHandlers) Confirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		resp, err := h.staking.Confirm(r.Context(), user, chi.URLParam(r, "stake_id"))
		if err != nil {
			writeStakingError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *StakeHandlers) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := h.staking.CancelStake(r.Context(), user, chi.URLParam(r, "stake_id")); err != nil {
			writeStakingError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "status": "cancelled"})
	}
}

// Mine lists stakes on the caller's sessions, optionally narrowed by status.
func (h *StakeHandlers) Mine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		items, err := h.staking.SellerStakes(r.Context(), user, r.URL.Query().Get("status"))
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"stakes": items})
	}
}

// Backed lists stakes the caller bought as a backer.
func (h *StakeHandlers) Backed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		items, err := h.staking.BuyerStakes(r.Context(), user, r.URL.Query().Get("status"))
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"stakes": items})
	}
}
