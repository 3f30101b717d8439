package postgres

import (
	"context"
	"fmt"

	"github.com/arklim/social-platform-trust/internal/core/domain"
)

// MessageRepository persists room-scoped chat messages in postgres.
type MessageRepository struct {
	db pgExecutor
}

// NewMessageRepository creates a postgres-backed message repository.
func NewMessageRepository(db pgExecutor) *MessageRepository {
	return &MessageRepository{db: db}
}

// ListRecent returns up to limit messages for the event's room, newest first.
// Ties on created_at break on id so the order is total.
func (r *MessageRepository) ListRecent(ctx context.Context, eventID string, limit int) ([]domain.Message, error) {
	query, args, err := psql.
		Select("id", "event_id", "author_id", "content", "created_at").
		From("messages").
		Where("event_id = ?", eventID).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.Message, 0, limit)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.EventID, &m.AuthorID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate message rows: %w", err)
	}

	return messages, nil
}

// Create inserts a message and returns it with the storage-assigned id and
// created_at.
func (r *MessageRepository) Create(ctx context.Context, eventID, authorID, content string) (*domain.Message, error) {
	query, args, err := psql.
		Insert("messages").
		Columns("event_id", "author_id", "content").
		Values(eventID, authorID, content).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert message query: %w", err)
	}

	message := domain.Message{
		EventID:  eventID,
		AuthorID: authorID,
		Content:  content,
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&message.ID, &message.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	return &message, nil
}
