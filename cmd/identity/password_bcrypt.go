// Package identity password hashing (bcrypt).
//
// identity delegates hashing to cmd/security/password as the single source of
// truth for bcrypt cost and password policy (defaults + env overrides), so the
// store and the HTTP layer cannot drift apart on credential handling.
package identity

import (
	"jobdeck/cmd/security/password"
)

// HashPassword returns a self-contained bcrypt hash string.
// The salt and cost are embedded in the output; nothing else must be stored.
func HashPassword(plaintext string) (string, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		// FromEnv only fails on malformed overrides; fall back to defaults.
		cfg = password.DefaultConfig()
	}
	return cfg.Hash(plaintext)
}

// VerifyPassword checks plaintext against a stored hash.
// (false, nil) means mismatch; (false, password.ErrInvalidHash) means the
// stored hash itself is unreadable and should be treated as an internal fault.
func VerifyPassword(plaintext, encodedHash string) (bool, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		cfg = password.DefaultConfig()
	}
	return cfg.Verify(encodedHash, plaintext)
}
