package session

import (
	"context"
	"time"
)

// Identity is the minimal verified-claims envelope propagated across a request.
// It is request-scoped: attached by the auth middleware after verification and
// discarded when the request completes.
type Identity struct {
	UserID        string
	Email         string
	DisplayName   string
	ContactNumber string

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ctxKey is unexported so only this package can attach identities to a context.
type ctxKey struct{}

// WithIdentity returns a child context carrying the verified identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFrom extracts the verified identity from a request context.
// ok is false when the request never passed the auth middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
