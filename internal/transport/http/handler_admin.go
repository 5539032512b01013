package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	appsubs "stake-market/internal/app/subscriptions"
	"stake-market/internal/store"

	"github.com/go-chi/chi/v5"
)

type AdminHandlers struct {
	store *store.Store
	subs  *appsubs.Service
}

func NewAdminHandlers(st *store.Store, subs *appsubs.Service) *AdminHandlers {
	return &AdminHandlers{store: st, subs: subs}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) PendingSubscriptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		resp, err := h.subs.Pending(r.Context(), limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *AdminHandlers) ApproveSubscription() http.HandlerFunc {
	return h.resolveSubscription("approved", h.subs.Approve)
}

func (h *AdminHandlers) RejectSubscription() http.HandlerFunc {
	return h.resolveSubscription("rejected", h.subs.Reject)
}

func (h *AdminHandlers) resolveSubscription(outcome string, resolve func(ctx context.Context, id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "subscription_id")
		if err := resolve(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, appsubs.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, appsubs.ErrRequestNotFound):
				WriteHTTPError(w, http.StatusNotFound, "request_not_found")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "subscription_id": id, "outcome": outcome})
	}
}
