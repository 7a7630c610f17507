package token

import (
	"os"
	"strings"
)

const (
	// SecretEnvKey is the env var name for the token signing secret.
	// #nosec G101 -- not a credential; it's an environment variable name.
	SecretEnvKey = "JOBDECK_TOKEN_SECRET"

	// MinSecretBytes is the minimum acceptable secret length for HMAC-SHA256.
	MinSecretBytes = 32
)

// SecretFromEnv returns the configured signing secret bytes (trimmed),
// enforcing a minimum byte length.
// If the env var is missing/blank -> ErrSecretMissing.
// If too short -> ErrSecretTooShort.
func SecretFromEnv(minBytes int) ([]byte, error) {
	raw := strings.TrimSpace(os.Getenv(SecretEnvKey))
	if raw == "" {
		return nil, ErrSecretMissing
	}
	// We measure bytes (not runes) because the secret is used as raw key material.
	b := []byte(raw)
	if minBytes > 0 && len(b) < minBytes {
		return nil, ErrSecretTooShort
	}
	return b, nil
}

// SecretConfigured reports whether the env key is present (non-empty after trim).
// Note: this does not enforce minimum length. Use SecretFromEnv for policy checks.
func SecretConfigured() bool {
	return strings.TrimSpace(os.Getenv(SecretEnvKey)) != ""
}
