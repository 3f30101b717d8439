package domain

import "time"

// ChatMessageCreatedEvent represents the payload for trust.chat.message.created messages.
type ChatMessageCreatedEvent struct {
	EventID   string
	MessageID string
	RoomID    string
	AuthorID  string
	CreatedAt time.Time
	Metadata  map[string]any
}

// ChatRoomJoinedEvent represents the payload for trust.chat.room.joined messages.
type ChatRoomJoinedEvent struct {
	EventID   string
	RoomID    string
	SubjectID string
	JoinedAt  time.Time
	Metadata  map[string]any
}
