package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgExecutor is the subset of pgxpool.Pool the repositories use. Tests
// substitute a pgxmock pool through the same interface.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repositories bundles the postgres-backed repository implementations.
type Repositories struct {
	Users    *UserRepository
	Events   *EventRepository
	Messages *MessageRepository
}

// NewRepositories wires all repositories over one connection pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(pool),
		Events:   NewEventRepository(pool),
		Messages: NewMessageRepository(pool),
	}
}
