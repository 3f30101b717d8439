package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UserRepository reads user rows from postgres.
type UserRepository struct {
	db pgExecutor
}

// NewUserRepository creates a postgres-backed user repository.
func NewUserRepository(db pgExecutor) *UserRepository {
	return &UserRepository{db: db}
}

// Exists reports whether the user exists.
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("users").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build user exists query: %w", err)
	}

	var one int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check user exists: %w", err)
	}

	return true, nil
}
