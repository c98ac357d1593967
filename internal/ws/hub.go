package ws

import "sync"

// Hub tracks the connections currently attached to this process. The
// sweeper diffs the store's connection list against this set to decide
// what is stale.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Sender
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{conns: make(map[string]Sender)}
}

// Register adds a live connection
func (h *Hub) Register(connectionID string, sender Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[connectionID] = sender
}

// Unregister removes a connection
func (h *Hub) Unregister(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connectionID)
}

// LiveConnections returns the identifiers of all attached connections
func (h *Hub) LiveConnections() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := make([]string, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	return conns
}

// Sender returns the sender for a connection, if attached
func (h *Hub) Sender(connectionID string) (Sender, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sender, ok := h.conns[connectionID]
	return sender, ok
}
