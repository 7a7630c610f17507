package jobs

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobdeck/cmd/identity/ids"
)

// listLimit caps a single filter response.
const listLimit = 200

// PostgresStore implements posting persistence over PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Schema/table identifiers are safely quoted to avoid SQL injection via identifiers.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the posting store (default "jobdeck").
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("jobs: empty schema")
		}
		if !identRe.MatchString(schema) {
			return fmt.Errorf("jobs: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore.
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
		return nil, fmt.Errorf("jobs: nil pool")
	}
	return st, nil
}

// Create persists a posting.
func (s *PostgresStore) Create(ctx context.Context, in CreateInput) (Posting, error) {
	if s == nil || s.pool == nil {
		return Posting{}, fmt.Errorf("jobs.Create: %w: nil store", ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return Posting{}, err
	}

	p := Posting{
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		Tags:        normalizeTags(in.Tags),
		PostedBy:    strings.TrimSpace(in.PostedBy),
	}
	switch {
	case p.Title == "":
		return Posting{}, fmt.Errorf("jobs.Create: %w: title is required", ErrInvalidInput)
	case p.Company == "":
		return Posting{}, fmt.Errorf("jobs.Create: %w: company is required", ErrInvalidInput)
	case p.Location == "":
		return Posting{}, fmt.Errorf("jobs.Create: %w: location is required", ErrInvalidInput)
	case p.Description == "":
		return Posting{}, fmt.Errorf("jobs.Create: %w: description is required", ErrInvalidInput)
	case len(p.Tags) == 0:
		return Posting{}, fmt.Errorf("jobs.Create: %w: tags are required", ErrInvalidInput)
	case p.PostedBy == "":
		return Posting{}, fmt.Errorf("jobs.Create: %w: posted_by is required", ErrInvalidInput)
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	p.CreatedAt = now

	id, err := ids.NewULID(now)
	if err != nil {
		return Posting{}, err
	}
	p.ID = id

	postings := pgx.Identifier{s.schema, "postings"}.Sanitize()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+postings+` (
		     id, title, company, location, description, tags, posted_by, created_at
		   ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Title, p.Company, p.Location, p.Description, p.Tags, p.PostedBy, p.CreatedAt,
	)
	if err != nil {
		return Posting{}, err
	}

	return p, nil
}

// List returns postings matching any populated filter field, newest first.
func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Posting, error) {
	if s == nil || s.pool == nil {
		return nil, fmt.Errorf("jobs.List: %w: nil store", ErrInvalidInput)
	}

	f.Title = strings.TrimSpace(f.Title)
	f.Company = strings.TrimSpace(f.Company)
	f.Location = strings.TrimSpace(f.Location)
	f.Description = strings.TrimSpace(f.Description)
	f.Tags = normalizeTags(f.Tags)

	if f.Empty() {
		return nil, fmt.Errorf("jobs.List: %w: at least one filter is required", ErrInvalidInput)
	}

	var (
		preds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Title != "" {
		preds = append(preds, "title = "+arg(f.Title))
	}
	if f.Company != "" {
		preds = append(preds, "company = "+arg(f.Company))
	}
	if f.Location != "" {
		preds = append(preds, "location = "+arg(f.Location))
	}
	if f.Description != "" {
		preds = append(preds, "description = "+arg(f.Description))
	}
	if len(f.Tags) > 0 {
		// && is array overlap: any shared tag matches.
		preds = append(preds, "tags && "+arg(f.Tags))
	}

	postings := pgx.Identifier{s.schema, "postings"}.Sanitize()

	rows, err := s.pool.Query(ctx,
		`SELECT id, title, company, location, description, tags, posted_by, created_at, updated_at
		   FROM `+postings+`
		  WHERE `+strings.Join(preds, " OR ")+`
		  ORDER BY created_at DESC, id DESC
		  LIMIT `+fmt.Sprintf("%d", listLimit),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Posting, 0, 16)
	for rows.Next() {
		var p Posting
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Company, &p.Location, &p.Description,
			&p.Tags, &p.PostedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// normalizeTags trims entries and drops empties; order is preserved.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
