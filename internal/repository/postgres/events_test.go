package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/arklim/social-platform-trust/internal/repository"
)

func TestEventRepository_GetOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewEventRepository(mock)

	mock.ExpectQuery(`SELECT host_id FROM events`).
		WithArgs("event-1").
		WillReturnRows(pgxmock.NewRows([]string{"host_id"}).AddRow("host-9"))

	owner, err := repo.GetOwner(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("GetOwner returned error: %v", err)
	}
	if owner != "host-9" {
		t.Fatalf("expected owner host-9, got %s", owner)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEventRepository_GetOwnerNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewEventRepository(mock)

	mock.ExpectQuery(`SELECT host_id FROM events`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"host_id"}))

	_, err = repo.GetOwner(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEventRepository_Exists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewEventRepository(mock)

	mock.ExpectQuery(`SELECT 1 FROM events`).
		WithArgs("event-1").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if !exists {
		t.Fatalf("expected event to exist")
	}

	mock.ExpectQuery(`SELECT 1 FROM events`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}))

	exists, err = repo.Exists(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if exists {
		t.Fatalf("expected event to be absent")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
