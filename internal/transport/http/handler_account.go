package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appaccount "stake-market/internal/app/account"
	appsubs "stake-market/internal/app/subscriptions"
)

type AccountHandlers struct {
	accounts *appaccount.Service
	subs     *appsubs.Service
}

func NewAccountHandlers(accounts *appaccount.Service, subs *appsubs.Service) *AccountHandlers {
	return &AccountHandlers{accounts: accounts, subs: subs}
}

func (h *AccountHandlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name    string `json:"name"`
			CashTag string `json:"cash_tag"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.accounts.Register(r.Context(), appaccount.RegisterInput{Name: body.Name, CashTag: body.CashTag})
		if err != nil {
			switch {
			case errors.Is(err, appaccount.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, appaccount.ErrInvalidCashTag):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_cash_tag")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *AccountHandlers) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		resp, err := h.accounts.Me(r.Context(), user)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *AccountHandlers) UpdateCashTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body struct {
			CashTag string `json:"cash_tag"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.accounts.UpdateCashTag(r.Context(), user, body.CashTag); err != nil {
			switch {
			case errors.Is(err, appaccount.ErrInvalidCashTag):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_cash_tag")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "cash_tag": body.CashTag})
	}
}

func (h *AccountHandlers) RequestSubscription() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body struct {
			CashTag string `json:"cash_tag"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.subs.Request(r.Context(), user, body.CashTag)
		if err != nil {
			switch {
			case errors.Is(err, appsubs.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, appsubs.ErrInvalidCashTag):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_cash_tag")
			case errors.Is(err, appsubs.ErrAlreadyActive):
				WriteHTTPError(w, http.StatusConflict, "already_subscribed")
			case errors.Is(err, appsubs.ErrAlreadyPending):
				WriteHTTPError(w, http.StatusConflict, "request_already_pending")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
