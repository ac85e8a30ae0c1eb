package chathub

import (
	"log"
	"sync"

	"studyzen/backend/internal/models"
)

// Matcher pairs connections that asked for a chat. It holds at most one
// waiting connection at a time: the first requester parks in the slot, the
// next distinct requester is paired with it into a fresh room.
type Matcher struct {
	mu      sync.Mutex
	waiting string

	relay    *Relay
	registry *Registry
	msgs     Messages
}

func NewMatcher(relay *Relay, reg *Registry, msgs Messages) *Matcher {
	return &Matcher{relay: relay, registry: reg, msgs: msgs}
}

// RequestChat either pairs the caller with the currently waiting connection
// or parks the caller as the new waiting one. The check-and-pair sequence
// runs under the lock: two simultaneous requesters can never both be told
// they are waiting, and never end up in two rooms sharing a member.
//
// A caller that is already the waiting occupant stays waiting; a connection
// is never paired with itself.
func (m *Matcher) RequestChat(anonID string) {
	m.mu.Lock()
	partner := m.waiting
	if partner != "" && partner != anonID {
		m.waiting = ""
		m.mu.Unlock()
		m.relay.CreateRoom(partner, anonID)
		return
	}
	m.waiting = anonID
	m.mu.Unlock()

	m.registry.Send(anonID, models.ChatEvent{
		Type:    models.EventWaiting,
		Message: m.msgs.Waiting,
	})
	log.Printf("connection %s is waiting for a partner", anonID)
}

// CancelWaiting clears the slot if anonID holds it. Called on disconnect so
// a vanished requester cannot be handed to the next caller.
func (m *Matcher) CancelWaiting(anonID string) {
	m.mu.Lock()
	if m.waiting == anonID {
		m.waiting = ""
	}
	m.mu.Unlock()
}

// Waiting reports the current slot occupant, or "" if nobody waits.
func (m *Matcher) Waiting() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waiting
}
