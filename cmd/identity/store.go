package identity

import (
	"context"
	"time"
)

// User is jobdeck's canonical security principal.
type User struct {
	ID        string
	Email     string
	EmailNorm string

	FirstName     string
	LastName      string
	ContactNumber string

	CreatedAt time.Time
}

// DisplayName is the public name embedded in session-token claims.
func (u User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserAuth bundles a user with its stored credential for login checks.
// IMPORTANT: PasswordHash must never leave the auth path; API responses are
// built from User only.
type UserAuth struct {
	User         User
	PasswordHash string
}

// CreateUserInput describes a signup request.
// Password arrives as plaintext and is hashed inside the store; it is never
// persisted or logged in the clear.
type CreateUserInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	ContactNumber string
	Now           time.Time
}

// CreateUserResult returns the created user.
type CreateUserResult struct {
	User User
}

// Store is the identity persistence boundary.
type Store interface {
	// CreateUser creates a user and its credential transactionally.
	// Returns ConflictError{Field: "email"} when the normalized email exists.
	CreateUser(ctx context.Context, in CreateUserInput) (CreateUserResult, error)

	// GetUserAuthByEmail looks up a user plus stored credential by normalized
	// email. Returns NotFoundError when no such account exists.
	GetUserAuthByEmail(ctx context.Context, email string) (UserAuth, error)

	// GetUserByID returns the user row for a verified subject id.
	GetUserByID(ctx context.Context, id string) (User, error)
}
