package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arklim/social-platform-trust/internal/repository"
)

// EventRepository reads event rows from postgres.
type EventRepository struct {
	db pgExecutor
}

// NewEventRepository creates a postgres-backed event repository.
func NewEventRepository(db pgExecutor) *EventRepository {
	return &EventRepository{db: db}
}

// GetOwner returns the host user id for the event.
func (r *EventRepository) GetOwner(ctx context.Context, eventID string) (string, error) {
	query, args, err := psql.
		Select("host_id").
		From("events").
		Where("id = ?", eventID).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build get owner query: %w", err)
	}

	var hostID string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&hostID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("get event owner: %w", err)
	}

	return hostID, nil
}

// Exists reports whether the event exists.
func (r *EventRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("events").
		Where("id = ?", eventID).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build event exists query: %w", err)
	}

	var one int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check event exists: %w", err)
	}

	return true, nil
}
