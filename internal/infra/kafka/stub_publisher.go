package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-trust/internal/core/domain"
	"github.com/arklim/social-platform-trust/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, subjectID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.String("subject_id", subjectID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishChatMessageCreated logs trust.chat.message.created events.
func (p *StubPublisher) PublishChatMessageCreated(_ context.Context, event domain.ChatMessageCreatedEvent) error {
	payload := map[string]any{
		"message_id": event.MessageID,
		"room_id":    event.RoomID,
		"author_id":  event.AuthorID,
		"created_at": event.CreatedAt,
		"metadata":   event.Metadata,
	}
	p.logEvent("chat.message.created", event.AuthorID, event.CreatedAt, payload)
	return nil
}

// PublishChatRoomJoined logs trust.chat.room.joined events.
func (p *StubPublisher) PublishChatRoomJoined(_ context.Context, event domain.ChatRoomJoinedEvent) error {
	payload := map[string]any{
		"room_id":    event.RoomID,
		"subject_id": event.SubjectID,
		"joined_at":  event.JoinedAt,
		"metadata":   event.Metadata,
	}
	p.logEvent("chat.room.joined", event.SubjectID, event.JoinedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
