package models

// Event types sent by clients.
const (
	EventNewChat     = "newChat"
	EventSendMessage = "sendMessage"
	EventTyping      = "typing"
	EventSkipChat    = "skipChat"
)

// Event types sent to clients.
const (
	EventWaiting     = "waiting"
	EventChatStarted = "chatStarted"
	EventMessage     = "message"
	EventSkipped     = "skipped"
)

// ChatEvent is the single wire shape for everything that crosses a chat
// connection, in both directions. Which fields carry data depends on Type:
// clients send {type, room, message} and the server stamps Sender from the
// connection before dispatching, so a client can never spoof another id.
type ChatEvent struct {
	Type    string `json:"type"`
	Room    string `json:"room,omitempty"`
	Sender  string `json:"sender,omitempty"`
	Message string `json:"message,omitempty"`
}
