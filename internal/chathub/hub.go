package chathub

import (
	"context"
	"errors"
	"log"

	"studyzen/backend/internal/models"
	"studyzen/backend/internal/storage"
)

// Hub is the single dispatcher for the anonymous chat. Connection lifecycle
// and inbound events arrive on its channels and are handled one at a time,
// so every state transition (pairing, relay, skip, disconnect cleanup) runs
// as a short non-blocking handler. The only work dispatched off this loop
// is the fire-and-forget persistence.
type Hub struct {
	Registry *Registry
	Matcher  *Matcher
	Relay    *Relay

	RegisterCh   chan Client
	UnregisterCh chan Client
	IncomingCh   chan models.ChatEvent

	storage storage.Storage
}

func NewHub(s storage.Storage, msgs Messages) *Hub {
	reg := NewRegistry()
	relay := NewRelay(reg, NewLogWriter(s), s, msgs)
	return &Hub{
		Registry:     reg,
		Matcher:      NewMatcher(relay, reg, msgs),
		Relay:        relay,
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		IncomingCh:   make(chan models.ChatEvent, 64),
		storage:      s,
	}
}

// Run processes lifecycle and chat events until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	log.Println("chat hub started")
	for {
		select {
		case c := <-h.RegisterCh:
			h.connect(c)
		case c := <-h.UnregisterCh:
			h.disconnect(c)
		case ev := <-h.IncomingCh:
			h.dispatch(ev)
		case <-ctx.Done():
			log.Printf("chat hub stopped: %v", ctx.Err())
			return
		}
	}
}

func (h *Hub) connect(c Client) {
	h.Registry.Register(c)
	log.Printf("connection %s registered", c.GetAnonID())

	go func(anonID string) {
		if err := h.storage.AddOnlineUser(anonID); err != nil {
			log.Printf("failed to mark %s online: %v", anonID, err)
		}
	}(c.GetAnonID())
}

// disconnect tears a vanished connection out of every piece of shared
// state, going through the matcher and relay operations rather than their
// maps so their invariants hold.
func (h *Hub) disconnect(c Client) {
	anonID := c.GetAnonID()

	h.Matcher.CancelWaiting(anonID)

	if roomID := c.GetRoomID(); roomID != "" {
		// The partner gets the same notification as an explicit skip.
		if err := h.Relay.RelaySkip(roomID, anonID); err != nil && !errors.Is(err, ErrNotRoomMember) {
			log.Printf("failed to end room %s on disconnect of %s: %v", roomID, anonID, err)
		}
	}

	h.Registry.Unregister(anonID)
	c.Close()
	log.Printf("connection %s unregistered", anonID)

	go func() {
		if err := h.storage.RemoveOnlineUser(anonID); err != nil {
			log.Printf("failed to mark %s offline: %v", anonID, err)
		}
	}()
}

func (h *Hub) dispatch(ev models.ChatEvent) {
	switch ev.Type {
	case models.EventNewChat:
		c, ok := h.Registry.Get(ev.Sender)
		if !ok {
			return
		}
		// Requesting a new chat while still in a room abandons the old
		// room first, as if the caller had skipped it.
		if roomID := c.GetRoomID(); roomID != "" {
			if err := h.Relay.RelaySkip(roomID, ev.Sender); err != nil {
				log.Printf("implicit skip of room %s by %s failed: %v", roomID, ev.Sender, err)
			}
		}
		h.Matcher.RequestChat(ev.Sender)

	case models.EventSendMessage:
		if err := h.Relay.RelayMessage(ev.Room, ev.Sender, ev.Message); err != nil {
			log.Printf("dropping message from %s for room %s: %v", ev.Sender, ev.Room, err)
		}

	case models.EventTyping:
		if err := h.Relay.RelayTyping(ev.Room, ev.Sender); err != nil {
			log.Printf("dropping typing event from %s for room %s: %v", ev.Sender, ev.Room, err)
		}

	case models.EventSkipChat:
		if err := h.Relay.RelaySkip(ev.Room, ev.Sender); err != nil {
			log.Printf("dropping skip from %s for room %s: %v", ev.Sender, ev.Room, err)
		}

	default:
		log.Printf("unknown event type %q from %s", ev.Type, ev.Sender)
	}
}
