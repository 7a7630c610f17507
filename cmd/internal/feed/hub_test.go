package feed

import (
	"testing"
	"time"

	"jobdeck/cmd/internal/jobs"
)

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	h := NewHub(nil)

	a := newClient("user-a", "sess-a", 8)
	b := newClient("user-b", "sess-b", 8)
	h.add(a)
	h.add(b)

	if got := h.Subscribers(); got != 2 {
		t.Fatalf("subscribers = %d, want 2", got)
	}

	p := jobs.Posting{ID: "01POSTING00000000000000001", Title: "SRE"}
	h.PostingCreated(p)

	for _, c := range []*client{a, b} {
		select {
		case ev := <-c.send:
			if ev.Type != TypePostingCreated {
				t.Fatalf("event type = %q", ev.Type)
			}
			if ev.Posting == nil || ev.Posting.ID != p.ID {
				t.Fatalf("event posting = %+v", ev.Posting)
			}
		case <-time.After(time.Second):
			t.Fatalf("client %s did not receive the event", c.sessionID)
		}
	}
}

func TestHub_SlowConsumerDropsNotBlocks(t *testing.T) {
	h := NewHub(nil)

	// Queue of 1, never drained: second broadcast must not block.
	c := newClient("user-a", "sess-a", 1)
	h.add(c)

	h.PostingCreated(jobs.Posting{ID: "01POSTING00000000000000001"})

	done := make(chan struct{})
	go func() {
		h.PostingCreated(jobs.Posting{ID: "01POSTING00000000000000002"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("broadcast blocked on a slow consumer")
	}

	// Only the first event is queued.
	ev := <-c.send
	if ev.Posting.ID != "01POSTING00000000000000001" {
		t.Fatalf("queued event = %+v", ev.Posting)
	}
	select {
	case ev := <-c.send:
		t.Fatalf("unexpected second event: %+v", ev.Posting)
	default:
	}
}

func TestHub_RemoveStopsDelivery(t *testing.T) {
	h := NewHub(nil)

	c := newClient("user-a", "sess-a", 8)
	h.add(c)
	h.remove(c.sessionID)
	c.close()

	if got := h.Subscribers(); got != 0 {
		t.Fatalf("subscribers = %d, want 0", got)
	}

	h.PostingCreated(jobs.Posting{ID: "01POSTING00000000000000001"})
	select {
	case ev := <-c.send:
		t.Fatalf("removed client received event: %+v", ev.Posting)
	default:
	}
}

func TestClient_CloseIdempotent(t *testing.T) {
	c := newClient("user-a", "sess-a", 1)
	c.close()
	c.close()

	select {
	case <-c.doneCh():
	default:
		t.Fatalf("done channel not closed")
	}
}
