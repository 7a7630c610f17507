package jobs

import (
	"context"
	"time"
)

// Posting is a published job listing.
type Posting struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	PostedBy    string     `json:"postedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// CreateInput describes a new posting. PostedBy comes from the verified
// session identity, never from the request body.
type CreateInput struct {
	Title       string
	Company     string
	Location    string
	Description string
	Tags        []string
	PostedBy    string
	Now         time.Time
}

// Filter selects postings matching ANY populated field (OR semantics).
// String fields match exactly; Tags match when the posting shares at least
// one tag.
type Filter struct {
	Title       string
	Company     string
	Location    string
	Description string
	Tags        []string
}

// Empty reports whether no filter field is populated.
func (f Filter) Empty() bool {
	return f.Title == "" && f.Company == "" && f.Location == "" &&
		f.Description == "" && len(f.Tags) == 0
}

// Store is the posting persistence boundary.
type Store interface {
	// Create persists a posting and returns it with id + timestamps set.
	Create(ctx context.Context, in CreateInput) (Posting, error)

	// List returns postings matching the filter, newest first. An empty
	// filter is rejected with ErrInvalidInput.
	List(ctx context.Context, f Filter) ([]Posting, error)
}
