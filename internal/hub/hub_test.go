package hub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegisterUnregister(t *testing.T) {
	h := newTestHub()
	c := NewClient("c-1", 4)

	h.Register(c)
	if got := h.ClientCount(); got != 1 {
		t.Errorf("Expected 1 client after register, got %d", got)
	}

	h.Unregister(c)
	if got := h.ClientCount(); got != 0 {
		t.Errorf("Expected 0 clients after unregister, got %d", got)
	}

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Errorf("Expected the send channel closed after unregister")
		}
	default:
		t.Errorf("Expected the send channel closed, but it is still open")
	}

	// A second unregister of the same client must not panic.
	h.Unregister(c)
}

func TestBroadcastDeliversToAllClients(t *testing.T) {
	h := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	c1 := NewClient("c-1", 4)
	c2 := NewClient("c-2", 4)
	h.Register(c1)
	h.Register(c2)

	h.Broadcast(map[string]string{"kind": "stop"})

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.Send:
			var payload map[string]string
			if err := json.Unmarshal(msg, &payload); err != nil {
				t.Fatalf("Failed to unmarshal broadcast: %v", err)
			}
			if payload["kind"] != "stop" {
				t.Errorf("Expected kind stop, got %s", payload["kind"])
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("Client %s never received the broadcast", c.ID)
		}
	}
}

func TestFanoutDropsWhenClientBufferFull(t *testing.T) {
	h := newTestHub()
	c := NewClient("c-1", 1)
	h.Register(c)
	c.Send <- []byte("first")

	// Must not block even though the buffer is full.
	h.fanout([]byte("second"))

	if got := <-c.Send; string(got) != "first" {
		t.Errorf("Expected the original message to survive, got %s", got)
	}
	select {
	case msg := <-c.Send:
		t.Errorf("Expected the overflow message dropped, got %s", msg)
	default:
	}
}

func TestRunClosesClientsOnShutdown(t *testing.T) {
	h := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	c := NewClient("c-1", 4)
	h.Register(c)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after context cancellation")
	}

	if _, ok := <-c.Send; ok {
		t.Errorf("Expected the client channel closed on shutdown")
	}
	if got := h.ClientCount(); got != 0 {
		t.Errorf("Expected no clients after shutdown, got %d", got)
	}
}
