package authapi

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries the HTTP-facing knobs of the auth API. The token itself is
// shaped by the session package; this only controls how it travels.
type Config struct {
	// MaxBodyBytes caps request bodies before JSON decoding.
	MaxBodyBytes int64
	// CookieName is the session cookie written on login.
	CookieName string
	// CookiePath scopes the session cookie.
	CookiePath string
	// CookieSecure marks the cookie Secure; disable only for local plain-HTTP
	// development.
	CookieSecure bool
}

func DefaultConfig() Config {
	return Config{
		MaxBodyBytes: 64 << 10,
		CookieName:   "token",
		CookiePath:   "/",
		CookieSecure: true,
	}
}

// LoadConfigFromEnv reads overrides from JOBDECK_AUTH_COOKIE_NAME,
// JOBDECK_AUTH_COOKIE_SECURE and JOBDECK_AUTH_MAX_BODY_BYTES.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v, ok := os.LookupEnv("JOBDECK_AUTH_COOKIE_NAME"); ok {
		if v == "" {
			return Config{}, fmt.Errorf("authapi: JOBDECK_AUTH_COOKIE_NAME is empty")
		}
		cfg.CookieName = v
	}
	if v, ok := os.LookupEnv("JOBDECK_AUTH_COOKIE_SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("authapi: JOBDECK_AUTH_COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = b
	}
	if v, ok := os.LookupEnv("JOBDECK_AUTH_MAX_BODY_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("authapi: JOBDECK_AUTH_MAX_BODY_BYTES: %q is not a positive integer", v)
		}
		cfg.MaxBodyBytes = n
	}
	return cfg, nil
}
