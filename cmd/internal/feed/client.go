package feed

import "sync"

// client represents one connected feed subscriber.
//
// Design notes:
// - send is intentionally NOT closed by the server to avoid panics from concurrent broadcasters.
// - done signals the connection goroutines to stop.
// - close is idempotent.
type client struct {
	sessionID string
	userID    string
	send      chan Event

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(userID, sessionID string, sendQueueSize int) *client {
	if sendQueueSize <= 0 {
		sendQueueSize = 64
	}
	return &client{
		sessionID: sessionID,
		userID:    userID,
		send:      make(chan Event, sendQueueSize),
		done:      make(chan struct{}),
	}
}

func (c *client) doneCh() <-chan struct{} { return c.done }

// close signals the client goroutines to stop (idempotent).
// It does NOT close send to keep broadcast safe under concurrency.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
