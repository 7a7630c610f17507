package session

import (
	"os"
	"time"

	"jobdeck/cmd/security/token"
)

// Config defines all runtime configuration for the session subsystem.
//
// It controls token TTL, issuer identity, and the HMAC signing secret.
// The struct is intentionally explicit and environment-driven so deployments
// can tune parameters without code changes, and tests can inject fake secrets.
type Config struct {
	// Issuer is the value set in the "iss" claim of session tokens.
	Issuer string

	// TokenTTL defines the lifetime of session tokens.
	// ExpiresAt is always IssuedAt + TokenTTL.
	TokenTTL time.Duration

	// Secret is the raw HMAC-SHA256 signing key.
	Secret []byte
}

// DefaultConfig returns defaults suitable for development.
// The secret is intentionally absent; it must be injected or loaded from env.
func DefaultConfig() Config {
	return Config{
		Issuer:   "jobdeck",
		TokenTTL: 24 * time.Hour,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Required:
//   - JOBDECK_TOKEN_SECRET (>= 32 bytes)
//
// Optional:
//   - JOBDECK_AUTH_ISSUER
//   - JOBDECK_AUTH_TOKEN_TTL (Go duration string)
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("JOBDECK_AUTH_ISSUER"); v != "" {
		cfg.Issuer = v
	}

	if v := os.Getenv("JOBDECK_AUTH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TokenTTL = d
	}

	secret, err := token.SecretFromEnv(token.MinSecretBytes)
	if err != nil {
		return Config{}, err
	}
	cfg.Secret = secret

	return cfg, nil
}
