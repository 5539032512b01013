package httptransport

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"stake-market/internal/store"
)

func TestCompleteRequiresCashOut(t *testing.T) {
	h := NewSessionHandlers(nil, nil)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "empty object", body: `{}`, wantCode: 400, wantErr: "invalid_request"},
		{name: "explicit null", body: `{"cash_out": null}`, wantCode: 400, wantErr: "invalid_request"},
		{name: "wrong field", body: `{"cashout": "250.00"}`, wantCode: 400, wantErr: "invalid_request"},
		{name: "not json", body: `cash_out=250`, wantCode: 400, wantErr: "invalid_json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/sessions/abc/complete", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), userContextKey{}, &store.User{ID: "u1"}))
			rr := httptest.NewRecorder()
			h.Complete()(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			if !strings.Contains(rr.Body.String(), tt.wantErr) {
				t.Fatalf("body = %q, want %q", rr.Body.String(), tt.wantErr)
			}
		})
	}
}

func TestCompleteRejectsAnonymous(t *testing.T) {
	h := NewSessionHandlers(nil, nil)
	req := httptest.NewRequest("POST", "/api/sessions/abc/complete", strings.NewReader(`{"cash_out": "100.00"}`))
	rr := httptest.NewRecorder()
	h.Complete()(rr, req)
	if rr.Code != 401 {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}
