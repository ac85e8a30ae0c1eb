package chathub

import (
	"log"

	"studyzen/backend/internal/models"
	"studyzen/backend/internal/storage"
)

// LogWriter appends relayed chat messages to durable storage. Writes are
// fire-and-forget: the live fan-out must never wait on, or fail because of,
// the transcript, so persistence errors are logged and swallowed.
type LogWriter struct {
	storage storage.Storage
}

func NewLogWriter(s storage.Storage) *LogWriter {
	return &LogWriter{storage: s}
}

// Append records one chat message. The row timestamp is assigned by the
// database on insert. A best-effort copy of the event is also published on
// the room's Redis channel for anything tailing the live feed.
func (w *LogWriter) Append(roomID, senderID, text string) {
	entry := &models.ChatHistory{
		RoomID:   roomID,
		SenderID: senderID,
		Content:  text,
	}
	go func() {
		if err := w.storage.SaveMessage(entry); err != nil {
			log.Printf("failed to persist message in room %s: %v", roomID, err)
		}
		ev := models.ChatEvent{
			Type:    models.EventMessage,
			Room:    roomID,
			Sender:  senderID,
			Message: text,
		}
		if err := w.storage.PublishEvent(roomID, ev); err != nil {
			log.Printf("failed to publish message event for room %s: %v", roomID, err)
		}
	}()
}
