// Package hub fans derived-update payloads out to connected map widgets
// over websockets. Every client receives every update; the planner is a
// single-map tool, so there is no per-region subscription.
package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Client is one connected map widget. Send is drained by the websocket
// write loop; a client that cannot keep up has updates dropped rather than
// blocking the mutation path.
type Client struct {
	ID   string
	Send chan []byte
}

// NewClient creates a client with the given send buffer size.
func NewClient(id string, bufferSize int) *Client {
	return &Client{ID: id, Send: make(chan []byte, bufferSize)}
}

// Hub tracks connected clients and broadcasts payloads to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	broadcast chan []byte
	logger    *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan []byte, 256),
		logger:    logger,
	}
}

// Run drains the broadcast queue until ctx is cancelled, then closes every
// client's send channel so their write loops terminate.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			return
		case msg := <-h.broadcast:
			h.fanout(msg)
		}
	}
}

// Register adds a client to the broadcast set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("client registered", "client_id", c.ID, "total", total)
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("client unregistered", "client_id", c.ID, "total", total)
}

// Broadcast queues a payload for delivery to all clients. The payload is
// marshaled once and shared. A full broadcast queue drops the update; the
// widget refetches the snapshot on reconnect, so a lost style hint is
// harmless.
func (h *Hub) Broadcast(payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal broadcast payload", "error", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast queue full, dropping update")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) fanout(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			h.logger.Debug("client send buffer full, dropping update", "client_id", c.ID)
		}
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
}
