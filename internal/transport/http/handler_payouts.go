package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	apppayouts "stake-market/internal/app/payouts"

	"github.com/go-chi/chi/v5"
)

type PayoutHandlers struct {
	payouts *apppayouts.Service
}

func NewPayoutHandlers(payouts *apppayouts.Service) *PayoutHandlers {
	return &PayoutHandlers{payouts: payouts}
}

func (h *PayoutHandlers) OwedToMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		limit, offset := ParsePagination(r)
		resp, err := h.payouts.OwedToBuyer(r.Context(), user, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PayoutHandlers) OwedByMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		limit, offset := ParsePagination(r)
		resp, err := h.payouts.OwedBySeller(r.Context(), user, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PayoutHandlers) MarkPaid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		metricPayoutMarkPaidTotal.Add(1)
		resp, err := h.payouts.MarkPaid(r.Context(), user, chi.URLParam(r, "payout_id"))
		if err != nil {
			switch {
			case errors.Is(err, apppayouts.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, apppayouts.ErrPayoutNotFound):
				WriteHTTPError(w, http.StatusNotFound, "payout_not_found")
			case errors.Is(err, apppayouts.ErrNotSeller):
				WriteHTTPError(w, http.StatusForbidden, "not_seller")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
