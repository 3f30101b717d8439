package ws

import (
	"testing"

	"github.com/arklim/social-platform-trust/internal/core/domain"
)

func testClient(id string) *client {
	return newClient(id, &domain.Identity{SubjectID: id, Role: domain.RoleGuest}, nil, 0)
}

func TestRegistry_JoinCreatesRoom(t *testing.T) {
	reg := newRegistry()

	c := testClient("c1")
	r := reg.join("event-1", c)

	if r.id != "event-1" {
		t.Fatalf("expected room event-1, got %s", r.id)
	}

	got, ok := reg.lookup("event-1")
	if !ok || got != r {
		t.Fatalf("expected lookup to return the joined room")
	}

	members := r.snapshot()
	if len(members) != 1 || members[0] != c {
		t.Fatalf("expected one member, got %d", len(members))
	}
}

func TestRegistry_JoinIsIdempotentPerClient(t *testing.T) {
	reg := newRegistry()
	c := testClient("c1")

	reg.join("event-1", c)
	r := reg.join("event-1", c)

	if members := r.snapshot(); len(members) != 1 {
		t.Fatalf("expected one member after double join, got %d", len(members))
	}
}

func TestRegistry_LeaveAllDropsEmptyRooms(t *testing.T) {
	reg := newRegistry()

	c1 := testClient("c1")
	c2 := testClient("c2")

	reg.join("event-1", c1)
	reg.join("event-1", c2)
	reg.join("event-2", c1)

	reg.leaveAll(c1)

	if _, ok := reg.lookup("event-2"); ok {
		t.Fatalf("expected empty room event-2 to be dropped")
	}

	r, ok := reg.lookup("event-1")
	if !ok {
		t.Fatalf("expected room event-1 to survive")
	}
	members := r.snapshot()
	if len(members) != 1 || members[0] != c2 {
		t.Fatalf("expected only c2 to remain")
	}
}
