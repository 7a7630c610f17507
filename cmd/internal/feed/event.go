package feed

import "jobdeck/cmd/internal/jobs"

// Event types sent to feed subscribers.
const (
	TypePostingCreated = "posting.created"
)

// Event is the wire envelope for feed messages.
type Event struct {
	Type    string        `json:"type"`
	Posting *jobs.Posting `json:"posting,omitempty"`
}
