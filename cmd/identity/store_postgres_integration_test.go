package identity

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration tests are opt-in and require JOBDECK_DATABASE_URL.
// In non-CI runs, unreachable Postgres skips these tests to keep local runs fast.

func TestPostgresStore_CreateUser_And_Login_Lookup(t *testing.T) {
	t.Parallel()

	pool := mustOpenTestPool(t)
	defer pool.Close()

	schema := mustCreateTestSchema(t, pool)
	t.Cleanup(func() { mustDropSchema(t, pool, schema) })
	mustApplyIdentitySchema(t, pool, schema)

	s := mustNewIdentityStore(t, pool, schema)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := s.CreateUser(ctx, CreateUserInput{
		FirstName:     "Avery",
		LastName:      "Lee",
		Email:         "Avery.Lee@Example.com",
		Password:      "strong-pass-1",
		ContactNumber: "5551234567",
		Now:           time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if res.User.ID == "" || len(res.User.ID) != 26 {
		t.Fatalf("expected 26-char ULID, got %q", res.User.ID)
	}
	if res.User.EmailNorm != "avery.lee@example.com" {
		t.Fatalf("email_norm = %q", res.User.EmailNorm)
	}

	// Lookup is normalized-email based.
	ua, err := s.GetUserAuthByEmail(ctx, "AVERY.LEE@example.COM")
	if err != nil {
		t.Fatalf("get auth: %v", err)
	}
	if ua.User.ID != res.User.ID {
		t.Fatalf("lookup returned wrong user")
	}
	if ua.PasswordHash == "strong-pass-1" {
		t.Fatalf("store kept the plaintext password")
	}

	ok, err := VerifyPassword("strong-pass-1", ua.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify: ok=%v err=%v", ok, err)
	}
	ok, err = VerifyPassword("wrong-pass", ua.PasswordHash)
	if err != nil || ok {
		t.Fatalf("expected wrong password to mismatch: ok=%v err=%v", ok, err)
	}

	u, err := s.GetUserByID(ctx, res.User.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if u.DisplayName() != "Avery Lee" {
		t.Fatalf("display name = %q", u.DisplayName())
	}
}

func TestPostgresStore_CreateUser_ConflictEmail_CaseInsensitive(t *testing.T) {
	t.Parallel()

	pool := mustOpenTestPool(t)
	defer pool.Close()

	schema := mustCreateTestSchema(t, pool)
	t.Cleanup(func() { mustDropSchema(t, pool, schema) })
	mustApplyIdentitySchema(t, pool, schema)

	s := mustNewIdentityStore(t, pool, schema)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	first, err := s.CreateUser(ctx, CreateUserInput{
		FirstName:     "Sam",
		Email:         "sam@example.com",
		Password:      "strong-pass-1",
		ContactNumber: "5550000001",
		Now:           time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create user 1: %v", err)
	}

	// Same email (case-insensitive) should conflict.
	_, err = s.CreateUser(ctx, CreateUserInput{
		FirstName:     "Sammy",
		Email:         "SAM@example.com",
		Password:      "strong-pass-2",
		ContactNumber: "5550000002",
		Now:           time.Now().UTC(),
	})
	if err == nil {
		t.Fatalf("expected conflict, got nil")
	}
	if !IsConflict(err) {
		t.Fatalf("expected conflict error, got: %v", err)
	}

	// First record must be unchanged by the failed attempt.
	ua, err := s.GetUserAuthByEmail(ctx, "sam@example.com")
	if err != nil {
		t.Fatalf("get auth: %v", err)
	}
	if ua.User.ID != first.User.ID || ua.User.FirstName != "Sam" {
		t.Fatalf("first record mutated: %+v", ua.User)
	}
	if ok, _ := VerifyPassword("strong-pass-1", ua.PasswordHash); !ok {
		t.Fatalf("first credential mutated")
	}
}

func TestPostgresStore_GetUserAuthByEmail_NotFound(t *testing.T) {
	t.Parallel()

	pool := mustOpenTestPool(t)
	defer pool.Close()

	schema := mustCreateTestSchema(t, pool)
	t.Cleanup(func() { mustDropSchema(t, pool, schema) })
	mustApplyIdentitySchema(t, pool, schema)

	s := mustNewIdentityStore(t, pool, schema)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, err := s.GetUserAuthByEmail(ctx, "ghost@example.com")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got: %v", err)
	}
}

// ---- helpers ----

func mustNewIdentityStore(t *testing.T, pool *pgxpool.Pool, schema string) *PostgresStore {
	t.Helper()
	s, err := NewPostgresStore(pool, WithSchema(schema))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func mustOpenTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	raw := strings.TrimSpace(os.Getenv("JOBDECK_DATABASE_URL"))
	if raw == "" {
		t.Skip("integration test skipped: JOBDECK_DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(raw)
	if err != nil {
		t.Fatalf("parse JOBDECK_DATABASE_URL: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}

	// Validate acquire quickly (fast fail).
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer pingCancel()

	c, err := pool.Acquire(pingCtx)
	if err != nil {
		pool.Close()
		if shouldSkipIntegration(err) {
			t.Skipf("integration test skipped: Postgres unreachable (JOBDECK_DATABASE_URL set): %v", err)
		}
		t.Fatalf("acquire: %v", err)
	}
	c.Release()

	return pool
}

func mustCreateTestSchema(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	id, err := NewULID(time.Now().UTC())
	if err != nil {
		t.Fatalf("ulid: %v", err)
	}
	schema := "jobdeck_it_" + strings.ToLower(id)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, `CREATE SCHEMA `+pgxIdent1(schema)); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return schema
}

func mustDropSchema(t *testing.T, pool *pgxpool.Pool, schema string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = pool.Exec(ctx, `DROP SCHEMA IF EXISTS `+pgxIdent1(schema)+` CASCADE`)
}

func mustApplyIdentitySchema(t *testing.T, pool *pgxpool.Pool, schema string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	users := pgIdent(schema, "users")
	creds := pgIdent(schema, "user_credentials")

	schemaSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  email_norm TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL DEFAULT '',
  contact_number TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

  CONSTRAINT chk_users_id_ulid_len CHECK (char_length(id) = 26),
  CONSTRAINT uq_users_email_norm UNIQUE (email_norm)
);

CREATE TABLE IF NOT EXISTS %s (
  user_id TEXT PRIMARY KEY REFERENCES %s(id) ON DELETE CASCADE,
  password_hash TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`, users, creds, users)

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
}

func shouldSkipIntegration(err error) bool {
	if err == nil {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "no such host") {
		return true
	}
	return false
}

func pgxIdent1(ident string) string {
	// pgx.Identifier safely quotes identifiers, preventing SQL injection in dynamic DDL.
	return pgx.Identifier{ident}.Sanitize()
}
