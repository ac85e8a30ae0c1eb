package chathub_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studyzen/backend/internal/chathub"
	"studyzen/backend/internal/models"
)

func startHub(t *testing.T, hub *chathub.Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := newTestHub(newMockStorage())
	startHub(t, hub)

	c := newFakeClient("conn_a")
	hub.RegisterCh <- c
	time.Sleep(50 * time.Millisecond)
	_, ok := hub.Registry.Get("conn_a")
	assert.True(t, ok)

	hub.UnregisterCh <- c
	time.Sleep(50 * time.Millisecond)
	_, ok = hub.Registry.Get("conn_a")
	assert.False(t, ok)
}

func TestHubDisconnectClearsWaitingSlot(t *testing.T) {
	hub := newTestHub(newMockStorage())
	startHub(t, hub)

	w := newFakeClient("conn_w")
	hub.RegisterCh <- w
	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_w"}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, "conn_w", hub.Matcher.Waiting())

	hub.UnregisterCh <- w
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, hub.Matcher.Waiting())

	// A later requester becomes the new occupant instead of being handed
	// the vanished connection.
	c := newFakeClient("conn_c")
	hub.RegisterCh <- c
	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_c"}
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, "conn_c", hub.Matcher.Waiting())
	assert.Empty(t, c.GetRoomID())
	events := c.drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, models.EventWaiting, events[0].Type)
	}
}

func TestHubDisconnectNotifiesPartner(t *testing.T) {
	hub := newTestHub(newMockStorage())
	startHub(t, hub)

	a := newFakeClient("conn_a")
	b := newFakeClient("conn_b")
	hub.RegisterCh <- a
	hub.RegisterCh <- b
	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_a"}
	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_b"}
	time.Sleep(50 * time.Millisecond)
	a.drain()
	b.drain()

	hub.UnregisterCh <- a
	time.Sleep(50 * time.Millisecond)

	events := b.drain()
	if assert.Len(t, events, 1, "the partner must be notified like an explicit skip") {
		assert.Equal(t, models.EventSkipped, events[0].Type)
	}
	assert.Empty(t, b.GetRoomID())
}

func TestHubNewChatWhileInRoomRequeues(t *testing.T) {
	hub := newTestHub(newMockStorage())
	startHub(t, hub)

	a := newFakeClient("conn_a")
	b := newFakeClient("conn_b")
	hub.RegisterCh <- a
	hub.RegisterCh <- b
	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_a"}
	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_b"}
	time.Sleep(50 * time.Millisecond)
	a.drain()
	b.drain()

	// A asks for a fresh chat without skipping first: the old room ends as
	// if skipped, then A re-enters matchmaking.
	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_a"}
	time.Sleep(50 * time.Millisecond)

	bEvents := b.drain()
	if assert.Len(t, bEvents, 1) {
		assert.Equal(t, models.EventSkipped, bEvents[0].Type)
	}
	assert.Empty(t, b.GetRoomID())

	var aTypes []string
	for _, ev := range a.drain() {
		aTypes = append(aTypes, ev.Type)
	}
	assert.Equal(t, []string{models.EventSkipped, models.EventWaiting}, aTypes)
	assert.Equal(t, "conn_a", hub.Matcher.Waiting())
}

// TestHubScenario walks the canonical three-connection flow end to end.
func TestHubScenario(t *testing.T) {
	hub := newTestHub(newMockStorage())
	startHub(t, hub)

	c1 := newFakeClient("conn_1")
	c2 := newFakeClient("conn_2")
	c3 := newFakeClient("conn_3")
	for _, c := range []*fakeClient{c1, c2, c3} {
		hub.RegisterCh <- c
	}

	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_1"}
	time.Sleep(50 * time.Millisecond)
	events := c1.drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, models.EventWaiting, events[0].Type)
	}

	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_2"}
	time.Sleep(50 * time.Millisecond)
	roomID := chathub.RoomID("conn_1", "conn_2")
	for _, c := range []*fakeClient{c1, c2} {
		events := c.drain()
		if assert.Len(t, events, 1) {
			assert.Equal(t, models.EventChatStarted, events[0].Type)
			assert.Equal(t, roomID, events[0].Room)
		}
	}

	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_3"}
	time.Sleep(50 * time.Millisecond)
	events = c3.drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, models.EventWaiting, events[0].Type)
	}

	hub.IncomingCh <- models.ChatEvent{Type: models.EventSendMessage, Sender: "conn_1", Room: roomID, Message: "hi"}
	time.Sleep(50 * time.Millisecond)
	events = c2.drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, models.EventMessage, events[0].Type)
		assert.Equal(t, "conn_1", events[0].Sender)
		assert.Equal(t, "hi", events[0].Message)
	}
	assert.Empty(t, c1.drain(), "the sender gets nothing back from the relay")

	hub.IncomingCh <- models.ChatEvent{Type: models.EventSkipChat, Sender: "conn_2", Room: roomID}
	time.Sleep(50 * time.Millisecond)
	for _, c := range []*fakeClient{c1, c2} {
		events := c.drain()
		if assert.Len(t, events, 1) {
			assert.Equal(t, models.EventSkipped, events[0].Type)
		}
	}
	assert.Equal(t, "conn_3", hub.Matcher.Waiting(), "the third connection keeps waiting untouched")
}

func TestHubDropsEventsFromStaleRoom(t *testing.T) {
	hub := newTestHub(newMockStorage())
	startHub(t, hub)

	a := newFakeClient("conn_a")
	b := newFakeClient("conn_b")
	hub.RegisterCh <- a
	hub.RegisterCh <- b
	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_a"}
	hub.IncomingCh <- models.ChatEvent{Type: models.EventNewChat, Sender: "conn_b"}
	time.Sleep(50 * time.Millisecond)
	roomID := chathub.RoomID("conn_a", "conn_b")
	hub.IncomingCh <- models.ChatEvent{Type: models.EventSkipChat, Sender: "conn_a", Room: roomID}
	time.Sleep(50 * time.Millisecond)
	a.drain()
	b.drain()

	// A stale client still referencing the dead room gets nothing back and
	// nothing is delivered.
	hub.IncomingCh <- models.ChatEvent{Type: models.EventSendMessage, Sender: "conn_b", Room: roomID, Message: "late"}
	hub.IncomingCh <- models.ChatEvent{Type: models.EventTyping, Sender: "conn_b", Room: roomID}
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, a.drain())
	assert.Empty(t, b.drain())
}
