package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-trust/internal/core/domain"
	"github.com/arklim/social-platform-trust/internal/core/port"
	"github.com/arklim/social-platform-trust/internal/infra/config"
	"github.com/arklim/social-platform-trust/internal/infra/logger"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, log *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: log}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	SubjectID string           `json:"subject_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, subjectID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	if reqID, ok := ctx.Value(logger.RequestIDKey{}).(string); ok && reqID != "" {
		metadata["request_id"] = reqID
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		SubjectID: subjectID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishChatMessageCreated publishes trust.chat.message.created events.
func (p *EventPublisher) PublishChatMessageCreated(ctx context.Context, event domain.ChatMessageCreatedEvent) error {
	payload := struct {
		MessageID string         `json:"message_id"`
		RoomID    string         `json:"room_id"`
		AuthorID  string         `json:"author_id"`
		CreatedAt time.Time      `json:"created_at"`
		Metadata  map[string]any `json:"metadata,omitempty"`
	}{
		MessageID: event.MessageID,
		RoomID:    event.RoomID,
		AuthorID:  event.AuthorID,
		CreatedAt: event.CreatedAt.UTC(),
		Metadata:  event.Metadata,
	}

	return p.publish(ctx, event.EventID, "chat.message.created", event.AuthorID, event.CreatedAt, payload)
}

// PublishChatRoomJoined publishes trust.chat.room.joined events.
func (p *EventPublisher) PublishChatRoomJoined(ctx context.Context, event domain.ChatRoomJoinedEvent) error {
	payload := struct {
		RoomID    string         `json:"room_id"`
		SubjectID string         `json:"subject_id"`
		JoinedAt  time.Time      `json:"joined_at"`
		Metadata  map[string]any `json:"metadata,omitempty"`
	}{
		RoomID:    event.RoomID,
		SubjectID: event.SubjectID,
		JoinedAt:  event.JoinedAt.UTC(),
		Metadata:  event.Metadata,
	}

	return p.publish(ctx, event.EventID, "chat.room.joined", event.SubjectID, event.JoinedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
