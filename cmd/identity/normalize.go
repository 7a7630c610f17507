package identity

import "strings"

// NormalizeEmail performs case-insensitive canonicalization.
// Uniqueness is enforced on the normalized form so "Dev@X.com" and
// "dev@x.com" collide.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeName trims surrounding whitespace from a profile name field.
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}
