package password

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Hash hashes a password using bcrypt and returns the encoded hash string.
// Format: $2a$<cost>$<salt+digest> — the salt and cost ride inside the hash,
// so Verify needs nothing beyond the stored string.
func (c Config) Hash(password string) (string, error) {
	if err := c.Validate(password); err != nil {
		return "", err
	}

	cost := c.Params.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultConfig().Params.Cost
	}

	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify checks whether password matches the given encoded hash.
// Returns (true, nil) for a match, (false, nil) for mismatch,
// and (false, ErrInvalidHash) for malformed/unsupported stored hashes.
func (c Config) Verify(encodedHash, password string) (bool, error) {
	if !looksLikeBcrypt(encodedHash) {
		return false, ErrInvalidHash
	}

	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		// Truncated hash, bad cost field, unknown version prefix, ...
		return false, ErrInvalidHash
	}
}

// Validate checks password policy. It does not mutate input.
func (c Config) Validate(password string) error {
	// Count characters (runes), not bytes, to be user-friendly.
	n := utf8.RuneCountInString(password)

	if n < c.Policy.MinLength {
		return ErrPasswordTooShort
	}
	if n > c.Policy.MaxLength || len(password) > 72 {
		return ErrPasswordTooLong
	}

	return nil
}

// looksLikeBcrypt is a cheap structural check so obviously corrupt stored
// values surface as ErrInvalidHash instead of a generic bcrypt error.
func looksLikeBcrypt(encoded string) bool {
	if len(encoded) < 59 || len(encoded) > 72 {
		return false
	}
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}
