// Package realtime pushes idea and collection change events to connected
// WebSocket clients and feeds database change streams back into the
// synchronization controller.
package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xyz-asif/datejar/internal/jar"
)

// Message is the wire format broadcast to all clients.
type Message struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Action  string `json:"action"`
	ID      string `json:"id"`
	Payload any    `json:"payload,omitempty"`
}

// NewMessage creates a Message with the Type field derived from channel and action.
func NewMessage(event jar.Event) Message {
	msg := Message{
		Type:    fmt.Sprintf("%s_%s", event.Channel, event.Action),
		Channel: event.Channel,
		Action:  string(event.Action),
		ID:      event.ID,
	}
	switch {
	case event.Idea != nil:
		msg.Payload = event.Idea
	case event.Collection != nil:
		msg.Payload = event.Collection
	}
	return msg
}

// Hub maintains the set of active WebSocket clients and broadcasts messages.
// It implements jar.Notifier so controller mutations reach clients directly.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Publish implements jar.Notifier.
func (h *Hub) Publish(event jar.Event) {
	h.Broadcast(NewMessage(event))
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop message to avoid blocking
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
