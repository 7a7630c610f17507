// Package session implements jobdeck's session-token architecture.
//
// Sessions are stateless: a successful login mints a signed, time-limited
// token carrying identity claims, and verification is purely local/cryptographic.
// There is no server-side session store and no revocation list; tokens expire
// naturally after their TTL (24h by default).
//
// Tokens are issued as JWT (HS256) signed with a process-wide secret that is
// injected at construction time (see cmd/security/token for sourcing/policy).
//
// Transport (cookie/header extraction) is intentionally out of scope here;
// it lives in cmd/internal/auth/api.
package session
