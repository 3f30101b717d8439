package port

import (
	"context"

	"github.com/arklim/social-platform-trust/internal/core/domain"
)

// EventPublisher publishes integration events consumed by downstream
// platform services (notification fan-out, activity feeds).
type EventPublisher interface {
	PublishChatMessageCreated(ctx context.Context, event domain.ChatMessageCreatedEvent) error
	PublishChatRoomJoined(ctx context.Context, event domain.ChatRoomJoinedEvent) error
}
