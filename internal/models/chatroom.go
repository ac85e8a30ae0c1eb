package models

import "time"

// ChatRoom is the persisted record of a 1-on-1 chat session. The room id is
// derived from the two participant connection ids, so re-creating the same
// pairing can never produce a duplicate row.
type ChatRoom struct {
	// RoomID is the deterministic identifier of the room.
	RoomID string `gorm:"primaryKey"`
	// User1ID is the anonymous id of the first participant.
	User1ID string
	// User2ID is the anonymous id of the second participant.
	User2ID string
	// IsActive indicates whether the room is still open.
	IsActive bool
	// StartedAt is when the pairing happened.
	StartedAt time.Time
	// EndedAt is when the room was closed by skip or disconnect.
	EndedAt time.Time
}
