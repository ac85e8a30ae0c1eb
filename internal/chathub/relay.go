package chathub

import (
	"errors"
	"log"
	"sync"
	"time"

	"studyzen/backend/internal/models"
	"studyzen/backend/internal/storage"
)

// ErrNotRoomMember is returned when a relay operation names a room the
// sender does not belong to, e.g. a stale client still referencing a room
// that ended. Callers drop the operation; no event goes back to the client.
var ErrNotRoomMember = errors.New("sender is not a member of the room")

// Messages are the user-facing system texts the hub side emits.
type Messages struct {
	Waiting string
	Skipped string
}

// DefaultMessages returns the English texts used when no localizer is wired.
func DefaultMessages() Messages {
	return Messages{
		Waiting: "Waiting for a partner to join...",
		Skipped: "Your partner left the chat.",
	}
}

// RoomID derives the deterministic room id for two connection ids. The
// composition is order-independent, so both participants and any retry
// resolve to the same id and a duplicate room cannot be created.
func RoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "#" + b
}

// Relay owns room membership and fans chat events out to room members.
// Membership is the only state it holds; persisted room and message records
// are written through storage off the relay path.
type Relay struct {
	mu    sync.Mutex
	rooms map[string][2]string

	registry *Registry
	logs     *LogWriter
	storage  storage.Storage
	msgs     Messages
}

func NewRelay(reg *Registry, logs *LogWriter, s storage.Storage, msgs Messages) *Relay {
	return &Relay{
		rooms:    make(map[string][2]string),
		registry: reg,
		logs:     logs,
		storage:  s,
		msgs:     msgs,
	}
}

// CreateRoom opens a room for two paired connections, notifies both sides
// and records the room. Returns the room id.
func (r *Relay) CreateRoom(a, b string) string {
	roomID := RoomID(a, b)
	r.mu.Lock()
	r.rooms[roomID] = [2]string{a, b}
	r.mu.Unlock()

	for _, id := range []string{a, b} {
		if c, ok := r.registry.Get(id); ok {
			c.SetRoomID(roomID)
		}
		r.registry.Send(id, models.ChatEvent{Type: models.EventChatStarted, Room: roomID})
	}

	record := &models.ChatRoom{
		RoomID:    roomID,
		User1ID:   a,
		User2ID:   b,
		IsActive:  true,
		StartedAt: time.Now(),
	}
	go func() {
		if err := r.storage.SaveRoom(record); err != nil {
			log.Printf("failed to save room %s: %v", roomID, err)
		}
	}()

	log.Printf("room %s opened for %s and %s", roomID, a, b)
	return roomID
}

// membership returns the members of roomID if senderID is one of them.
func (r *Relay) membership(roomID, senderID string) ([2]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[roomID]
	if !ok || (members[0] != senderID && members[1] != senderID) {
		return [2]string{}, ErrNotRoomMember
	}
	return members, nil
}

// RelayMessage appends the message to the chat log and fans it out to every
// room member except the sender; the sender's own client already rendered
// the message locally, so echoing it back would display it twice.
func (r *Relay) RelayMessage(roomID, senderID, text string) error {
	members, err := r.membership(roomID, senderID)
	if err != nil {
		return err
	}

	r.logs.Append(roomID, senderID, text)

	ev := models.ChatEvent{
		Type:    models.EventMessage,
		Room:    roomID,
		Sender:  senderID,
		Message: text,
	}
	for _, id := range members {
		if id != senderID {
			r.registry.Send(id, ev)
		}
	}
	return nil
}

// RelayTyping fans a transient typing indicator out to the other room
// members. Not persisted.
func (r *Relay) RelayTyping(roomID, senderID string) error {
	members, err := r.membership(roomID, senderID)
	if err != nil {
		return err
	}
	ev := models.ChatEvent{Type: models.EventTyping, Room: roomID, Sender: senderID}
	for _, id := range members {
		if id != senderID {
			r.registry.Send(id, ev)
		}
	}
	return nil
}

// RelaySkip ends a room. Both members receive the skipped notification,
// including the initiator, so each side resets to the start-a-new-chat
// state. Neither side is re-queued; a new chat takes a fresh request.
func (r *Relay) RelaySkip(roomID, initiatorID string) error {
	r.mu.Lock()
	members, ok := r.rooms[roomID]
	if !ok || (members[0] != initiatorID && members[1] != initiatorID) {
		r.mu.Unlock()
		return ErrNotRoomMember
	}
	delete(r.rooms, roomID)
	r.mu.Unlock()

	ev := models.ChatEvent{Type: models.EventSkipped, Message: r.msgs.Skipped}
	for _, id := range members {
		if c, found := r.registry.Get(id); found && c.GetRoomID() == roomID {
			c.SetRoomID("")
		}
		r.registry.Send(id, ev)
	}

	go func() {
		if err := r.storage.CloseRoom(roomID); err != nil {
			log.Printf("failed to close room %s: %v", roomID, err)
		}
	}()

	log.Printf("room %s ended by %s", roomID, initiatorID)
	return nil
}
