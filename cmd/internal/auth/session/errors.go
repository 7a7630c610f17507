package session

import "errors"

var (
	// ErrTokenMissing is returned when no token was presented at all.
	ErrTokenMissing = errors.New("token missing")

	// ErrTokenInvalid is returned when a token fails signature verification,
	// is malformed, or was signed with an unexpected algorithm or secret.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired is returned when a token's signature is valid but its
	// expiration has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
