package authapi

import (
	"errors"
	"net/http"
	"strings"

	"jobdeck/cmd/internal/auth/session"
)

// RequireAuth returns middleware that admits only requests carrying a valid
// session token. The token is read from the session cookie first, then from
// an Authorization bearer header. On success the verified identity is placed
// on the request context for downstream handlers.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := h.tokenFromRequest(r)
		if raw == "" {
			h.metrics.deny("missing")
			writeFail(w, http.StatusUnauthorized, "token is missing")
			return
		}

		id, err := h.tokens.Verify(raw, h.now())
		if err != nil {
			switch {
			case errors.Is(err, session.ErrTokenExpired):
				h.metrics.deny("expired")
				writeFail(w, http.StatusUnauthorized, "token has expired")
			case errors.Is(err, session.ErrTokenMissing):
				h.metrics.deny("missing")
				writeFail(w, http.StatusUnauthorized, "token is missing")
			default:
				h.metrics.deny("invalid")
				writeFail(w, http.StatusUnauthorized, "token is invalid")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithIdentity(r.Context(), id)))
	})
}

func (h *Handler) tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(h.cfg.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authz := r.Header.Get("Authorization")
	if v, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
