package feed

import (
	"log/slog"
	"sync"

	"jobdeck/cmd/internal/jobs"
)

// Hub fans posting events out to every connected client. It satisfies
// jobs.Notifier so the jobs handler can publish without importing feed types.
type Hub struct {
	log *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub constructs a Hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:     log,
		clients: make(map[string]*client),
	}
}

// PostingCreated broadcasts a new posting to all subscribers. Slow consumers
// whose send queue is full miss the event rather than block the caller.
func (h *Hub) PostingCreated(p jobs.Posting) {
	ev := Event{Type: TypePostingCreated, Posting: &p}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case <-c.doneCh():
		case c.send <- ev:
		default:
			h.log.Info("feed.drop.slow_consumer", "session_id", c.sessionID, "posting_id", p.ID)
		}
	}
}

// Subscribers reports the current client count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.sessionID] = c
}

// remove must run before client.close so a concurrent broadcast never sees a
// closed client without a map entry.
func (h *Hub) remove(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, sessionID)
}
