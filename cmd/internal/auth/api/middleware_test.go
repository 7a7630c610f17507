package authapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobdeck/cmd/internal/auth/session"
)

func issueTestToken(t *testing.T, h *Handler, now time.Time) string {
	t.Helper()
	token, _, err := h.tokens.Issue(session.Identity{
		UserID:      "01TESTUSERA000000000000000",
		Email:       "ada@example.com",
		DisplayName: "Ada Lovelace",
	}, now)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestRequireAuth_CookieToken(t *testing.T) {
	h, _ := testHandler(t)
	now := time.Now().UTC()
	h.now = func() time.Time { return now }
	token := issueTestToken(t, h, now)

	var got session.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := session.IdentityFrom(r.Context())
		if !ok {
			t.Fatalf("no identity on context")
		}
		got = id
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/job/create", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	h.RequireAuth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204 (body=%s)", rec.Code, rec.Body.String())
	}
	if got.UserID != "01TESTUSERA000000000000000" || got.Email != "ada@example.com" {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestRequireAuth_BearerFallback(t *testing.T) {
	h, _ := testHandler(t)
	now := time.Now().UTC()
	h.now = func() time.Time { return now }
	token := issueTestToken(t, h, now)

	req := httptest.NewRequest(http.MethodPost, "/job/create", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/job/create", nil)
	rec := httptest.NewRecorder()
	h.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("next must not run without a token")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "token is missing" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/job/create", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage.token.value"})
	rec := httptest.NewRecorder()
	h.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("next must not run with an invalid token")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "token is invalid" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	h, _ := testHandler(t)
	issued := time.Now().UTC().Add(-25 * time.Hour)
	token := issueTestToken(t, h, issued)

	req := httptest.NewRequest(http.MethodPost, "/job/create", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	h.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("next must not run with an expired token")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "token has expired" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestRequireAuth_CookiePreferredOverHeader(t *testing.T) {
	h, _ := testHandler(t)
	now := time.Now().UTC()
	h.now = func() time.Time { return now }
	token := issueTestToken(t, h, now)

	// Valid cookie + garbage header: cookie wins, request passes.
	req := httptest.NewRequest(http.MethodPost, "/job/create", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}
