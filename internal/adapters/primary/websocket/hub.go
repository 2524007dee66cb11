package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// Hub maintains the set of live dashboard connections and fans envelopes
// out to them. It is the only shared mutable resource in the real-time
// core: the client set is mutated by Register/Unregister and read by
// Broadcast, all under the mutex. Broadcast is undirected - every open
// connection receives every event.
type Hub struct {
	// clients is the live connection set.
	clients map[*Client]bool

	// mu protects the clients map.
	mu sync.RWMutex

	logger *slog.Logger
}

// Ensure Hub implements the Broadcaster port.
var _ ports.Broadcaster = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		logger:  logger.With("component", "websocket_hub"),
	}
}

// Register adds a newly upgraded connection to the live set and unicasts a
// welcome envelope to it, confirming the channel is live. Registration
// never fails the caller: if the welcome cannot be queued the client's own
// pump teardown will clean it up.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	welcome, err := json.Marshal(domain.Envelope{
		Event: domain.EventConnected,
		Data:  map[string]string{"message": "connected to command center"},
	})
	if err == nil {
		client.enqueue(welcome)
	}

	h.logger.Info("client registered", "total_connections", total)
}

// Unregister removes a connection from the live set and releases its write
// pump. Idempotent: unregistering an absent or already-unregistered client
// is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	_, present := h.clients[client]
	if present {
		delete(h.clients, client)
	}
	total := len(h.clients)
	h.mu.Unlock()

	client.shutdown()

	if present {
		h.logger.Info("client unregistered", "total_connections", total)
	}
}

// Broadcast serializes the envelope once and pushes the resulting frame to
// every connection registered at this moment. Sends are non-blocking: a
// client whose buffer is full misses the envelope rather than stalling the
// producer, and its eviction is left to its own pump teardown. The only
// failure Broadcast recognizes is an unserializable payload, which is a
// producer defect: it is logged and the envelope dropped.
func (h *Hub) Broadcast(event domain.EventName, data any) {
	payload, err := json.Marshal(domain.Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error("unserializable broadcast payload, dropping envelope",
			"event", event,
			"error", err,
		)
		return
	}

	clients := h.snapshot()

	h.logger.Debug("broadcasting envelope",
		"event", event,
		"client_count", len(clients),
	)

	for _, client := range clients {
		if !client.enqueue(payload) {
			h.logger.Warn("client send buffer full or closed, envelope dropped",
				"event", event,
			)
		}
	}
}

// snapshot copies the client set under the read lock so fan-out never
// iterates a mutating map.
func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	return clients
}

// ClientCount returns the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
