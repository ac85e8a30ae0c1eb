package models

import "gorm.io/gorm"

// ChatHistory is one persisted chat message. The embedded gorm.Model
// provides the primary key and CreatedAt, which doubles as the
// server-assigned message timestamp. Rows are append-only; nothing in the
// application updates or deletes them.
type ChatHistory struct {
	gorm.Model

	// RoomID is the room the message was relayed in.
	RoomID string `gorm:"type:text;not null;index:idx_room_msg"`
	// SenderID is the anonymous id of the sending connection.
	SenderID string `gorm:"type:text;not null;index:idx_room_msg"`
	// Content is the message text.
	Content string `gorm:"type:text;not null"`
}
