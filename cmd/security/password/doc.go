// Package password provides password hashing and verification utilities for jobdeck.
//
// It implements bcrypt hashing with a self-contained encoded string format and includes:
// - Configurable bcrypt cost (via environment variables)
// - Password policy validation
// - Strict handling of malformed stored hashes during Verify
//
// Security notes:
// - Hash strings are treated as untrusted input during Verify and are validated accordingly.
// - Mismatch and malformed-hash are distinct outcomes: a wrong password is (false, nil),
//   a hash that cannot be decoded is (false, ErrInvalidHash).
package password
