// Package token provides the session-token signing secret for jobdeck.
//
// It is the single source of truth for secret sourcing and policy.
//
// Design goals:
// - The secret is read once at startup and injected into the token manager;
//   nothing else in the tree reads the env var directly.
// - Policy enforcement is fail-fast: a missing or short secret aborts startup
//   instead of silently signing with weak material.
//
// Environment:
// - JOBDECK_TOKEN_SECRET: raw secret bytes for HMAC-SHA256 signing.
package token
