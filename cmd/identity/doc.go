// Package identity implements jobdeck's identity foundation.
//
// It contains the user persistence boundary (postgres-backed), credential
// hashing bridges, and the normalization rules applied to identity fields.
//
// This package is intentionally dependency-light and security-first.
package identity
