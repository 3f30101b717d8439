package port

import (
	"context"

	"github.com/arklim/social-platform-trust/internal/core/domain"
)

// MessageRepository persists and reads room-scoped chat messages.
type MessageRepository interface {
	// ListRecent returns up to limit messages for the room ordered
	// newest-first.
	ListRecent(ctx context.Context, eventID string, limit int) ([]domain.Message, error)
	// Create inserts a message; id and created_at are assigned by storage.
	Create(ctx context.Context, eventID, authorID, content string) (*domain.Message, error)
}
