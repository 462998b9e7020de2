package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestCartSessionMintsIdentifier(t *testing.T) {
	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == "" {
		t.Fatalf("expected session id in context")
	}
	if err := uuid.Validate(seen); err != nil {
		t.Fatalf("minted session id is not a uuid: %v", err)
	}
	if got := resp.Header().Get("X-Cart-Session"); got != seen {
		t.Fatalf("expected session id echoed on response, got %q", got)
	}
}

func TestCartSessionKeepsExistingIdentifier(t *testing.T) {
	sessionID := uuid.NewString()

	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Session", sessionID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen != sessionID {
		t.Fatalf("expected session %s, got %s", sessionID, seen)
	}
	if got := resp.Header().Get("X-Cart-Session"); got != sessionID {
		t.Fatalf("expected header echoed, got %q", got)
	}
}

func TestCartSessionReplacesMalformedIdentifier(t *testing.T) {
	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Session", "not-a-uuid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == "not-a-uuid" {
		t.Fatalf("malformed session id should be replaced")
	}
	if err := uuid.Validate(seen); err != nil {
		t.Fatalf("replacement session id is not a uuid: %v", err)
	}
}
