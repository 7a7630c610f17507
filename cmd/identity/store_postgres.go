package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements identity persistence over PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Schema/table identifiers are safely quoted to avoid SQL injection via identifiers.
// - Errors are mapped to identity sentinel kinds where appropriate.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the identity store (default "jobdeck").
// The schema name is validated to be a legal PostgreSQL identifier.
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("identity: empty schema")
		}
		if !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("identity: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore with secure defaults.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) (*PostgresStore, error) {
	st := &PostgresStore{
		pool:   pool,
		schema: "jobdeck",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.pool == nil {
		return nil, fmt.Errorf("identity: nil pool")
	}
	return st, nil
}

// CreateUser creates a new user and its credential transactionally.
func (s *PostgresStore) CreateUser(ctx context.Context, in CreateUserInput) (CreateUserResult, error) {
	const op = "identity.CreateUser"

	if s == nil || s.pool == nil {
		return CreateUserResult{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return CreateUserResult{}, err
	}

	firstName := NormalizeName(in.FirstName)
	lastName := NormalizeName(in.LastName)
	email := strings.TrimSpace(in.Email)
	contact := strings.TrimSpace(in.ContactNumber)

	if firstName == "" {
		return CreateUserResult{}, pgInvalid(op, "first name is required")
	}
	if email == "" {
		return CreateUserResult{}, pgInvalid(op, "email is required")
	}
	if strings.TrimSpace(in.Password) == "" {
		return CreateUserResult{}, pgInvalid(op, "password is required")
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	emailNorm := NormalizeEmail(email)

	// Hash password before opening the transaction; bcrypt is the slow part.
	pwHash, err := HashPassword(in.Password)
	if err != nil {
		return CreateUserResult{}, pgInvalid(op, err.Error())
	}

	userID, err := NewULID(now)
	if err != nil {
		return CreateUserResult{}, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return CreateUserResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	users := pgIdent(s.schema, "users")
	creds := pgIdent(s.schema, "user_credentials")

	_, err = tx.Exec(ctx,
		`INSERT INTO `+users+` (
		     id, email, email_norm, first_name, last_name, contact_number, created_at
		   ) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID,
		email,
		emailNorm,
		firstName,
		lastName,
		contact,
		now,
	)
	if err != nil {
		if field, ok := pgClassifyUniqueViolation(err); ok {
			return CreateUserResult{}, ConflictError{Op: op, Field: field}
		}
		return CreateUserResult{}, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO `+creds+` (user_id, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $3)`,
		userID, pwHash, now,
	)
	if err != nil {
		// FK failure here indicates schema inconsistency, not user input.
		return CreateUserResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return CreateUserResult{}, err
	}

	out := User{
		ID:            userID,
		Email:         email,
		EmailNorm:     emailNorm,
		FirstName:     firstName,
		LastName:      lastName,
		ContactNumber: contact,
		CreatedAt:     now,
	}

	return CreateUserResult{User: out}, nil
}

// GetUserAuthByEmail looks up a user and its credential by normalized email.
func (s *PostgresStore) GetUserAuthByEmail(ctx context.Context, email string) (UserAuth, error) {
	const op = "identity.GetUserAuthByEmail"

	if s == nil || s.pool == nil {
		return UserAuth{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	emailNorm := NormalizeEmail(email)
	if emailNorm == "" {
		return UserAuth{}, pgInvalid(op, "email is required")
	}

	users := pgIdent(s.schema, "users")
	creds := pgIdent(s.schema, "user_credentials")

	var (
		ua        UserAuth
		createdAt time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT u.id, u.email, u.email_norm, u.first_name, u.last_name, u.contact_number, u.created_at,
		        c.password_hash
		   FROM `+users+` u
		   JOIN `+creds+` c ON c.user_id = u.id
		  WHERE u.email_norm = $1`,
		emailNorm,
	).Scan(
		&ua.User.ID,
		&ua.User.Email,
		&ua.User.EmailNorm,
		&ua.User.FirstName,
		&ua.User.LastName,
		&ua.User.ContactNumber,
		&createdAt,
		&ua.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserAuth{}, NotFoundError{Op: op, Resource: "user"}
		}
		return UserAuth{}, err
	}
	ua.User.CreatedAt = createdAt

	return ua, nil
}

// GetUserByID returns the user row for a verified subject id.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (User, error) {
	const op = "identity.GetUserByID"

	if s == nil || s.pool == nil {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, pgInvalid(op, "id is required")
	}

	users := pgIdent(s.schema, "users")

	var u User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, email_norm, first_name, last_name, contact_number, created_at
		   FROM `+users+`
		  WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.EmailNorm, &u.FirstName, &u.LastName, &u.ContactNumber, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, NotFoundError{Op: op, Resource: "user"}
		}
		return User{}, err
	}

	return u, nil
}

// ---- helpers ----

// pgInvalid standardizes invalid input errors.
func pgInvalid(op, msg string) error {
	return OpError{Op: op, Kind: ErrInvalidInput, Msg: msg}
}

// pgIdent safely quotes a schema-qualified identifier: "schema"."name".
func pgIdent(schema, name string) string {
	return pgx.Identifier{schema, name}.Sanitize()
}

func pgClassifyUniqueViolation(err error) (field string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != "23505" { // unique_violation
		return "", false
	}

	// Prefer stable schema constraint names; fall back to substring matching.
	c := strings.ToLower(strings.TrimSpace(pgErr.ConstraintName))

	switch c {
	case "uq_users_email_norm":
		return "email", true
	default:
		if strings.Contains(c, "email") {
			return "email", true
		}
		return "unique", true
	}
}
