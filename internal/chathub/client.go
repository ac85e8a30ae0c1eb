package chathub

import "studyzen/backend/internal/models"

// Client is the interface for one live connection, whatever its transport.
// The hub, matcher and relay address clients only through it, so a test
// double or a future non-WebSocket transport plugs in without changes.
type Client interface {
	// GetAnonID returns the anonymous connection id, unique per connection.
	GetAnonID() string
	// GetRoomID returns the id of the room the client is in, or "" if idle.
	GetRoomID() string
	// SetRoomID assigns or clears the client's room. Called by the relay
	// when a pairing forms or a room ends.
	SetRoomID(string)

	// GetSendChannel returns the channel the hub side writes outgoing
	// events to. Delivery is best-effort; a full channel means the event
	// is dropped.
	GetSendChannel() chan<- models.ChatEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's outgoing channel. Safe to call more
	// than once.
	Close()
}
