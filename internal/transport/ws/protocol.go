package ws

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wire frame for every gateway message, in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client-to-server events.
const (
	EventJoinRoom    = "join-event-chat"
	EventSendMessage = "send-message"
)

// Server-to-client events.
const (
	EventRecentMessages = "recent-messages"
	EventNewMessage     = "new-message"
	EventError          = "error"
)

// JoinRoomPayload asks to join an event's chat room.
type JoinRoomPayload struct {
	EventID string `json:"eventId"`
}

// SendMessagePayload carries one outbound chat message.
type SendMessagePayload struct {
	EventID string `json:"eventId"`
	Content string `json:"content"`
}

// ErrorPayload reports a request-scoped failure to one client.
type ErrorPayload struct {
	Message string `json:"message"`
}

func newEnvelope(event string, data any) (Envelope, error) {
	if data == nil {
		return Envelope{Event: event}, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", event, err)
	}

	return Envelope{Event: event, Data: raw}, nil
}

func errorEnvelope(message string) Envelope {
	env, _ := newEnvelope(EventError, ErrorPayload{Message: message})
	return env
}
