package chathub

import (
	"sync"

	"studyzen/backend/internal/models"
)

// Registry maps anonymous connection ids to live clients so the matcher and
// relay can address a participant without holding transport objects.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]Client)}
}

// Register adds a client under its anon id.
func (r *Registry) Register(c Client) {
	r.mu.Lock()
	r.clients[c.GetAnonID()] = c
	r.mu.Unlock()
}

// Unregister removes a connection. Removing an absent id is a no-op.
func (r *Registry) Unregister(anonID string) {
	r.mu.Lock()
	delete(r.clients, anonID)
	r.mu.Unlock()
}

// Get returns the live client for an anon id, if any.
func (r *Registry) Get(anonID string) (Client, bool) {
	r.mu.RLock()
	c, ok := r.clients[anonID]
	r.mu.RUnlock()
	return c, ok
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	n := len(r.clients)
	r.mu.RUnlock()
	return n
}

// Send delivers an event to one connection, best-effort. An unknown id is
// dropped silently (the connection is already gone, nobody can act on the
// failure), and a client whose buffer is full loses the event rather than
// stalling the hub.
func (r *Registry) Send(anonID string, ev models.ChatEvent) {
	r.mu.RLock()
	c, ok := r.clients[anonID]
	r.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case c.GetSendChannel() <- ev:
	default:
	}
}
