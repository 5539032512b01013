package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	apppublic "stake-market/internal/app/public"
	appstaking "stake-market/internal/app/staking"

	"github.com/go-chi/chi/v5"
)

type PublicHandlers struct {
	public  *apppublic.Service
	staking *appstaking.Service
}

func NewPublicHandlers(public *apppublic.Service, staking *appstaking.Service) *PublicHandlers {
	return &PublicHandlers{public: public, staking: staking}
}

func isAllowedMarketplaceStatus(v string) bool {
	switch v {
	case "", "funding", "active", "completed":
		return true
	}
	return false
}

func isAllowedLeaderboardMetric(v string) bool {
	switch v {
	case "", "profit", "winrate":
		return true
	}
	return false
}

func (h *PublicHandlers) Marketplace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if !isAllowedMarketplaceStatus(status) {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_status")
			return
		}
		limit, offset := ParsePagination(r)
		resp, err := h.public.Marketplace(r.Context(), status, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PublicHandlers) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, stakes, err := h.staking.Session(r.Context(), chi.URLParam(r, "session_id"))
		if err != nil {
			if errors.Is(err, appstaking.ErrSessionNotFound) {
				WriteHTTPError(w, http.StatusNotFound, "session_not_found")
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"session": sess, "stakes": stakes})
	}
}

func (h *PublicHandlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metric := r.URL.Query().Get("metric")
		if !isAllowedLeaderboardMetric(metric) {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_metric")
			return
		}
		limit, _ := ParsePagination(r)
		resp, err := h.public.Leaderboard(r.Context(), metric, limit)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PublicHandlers) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.public.GlobalStats(r.Context())
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
