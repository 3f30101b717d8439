package ws

import "sync"

// room is one event's chat room. Its mutex is held across persist and
// broadcast so every member observes messages in insertion order.
type room struct {
	id string

	mu      sync.Mutex
	members map[*client]struct{}
}

func newRoom(id string) *room {
	return &room{
		id:      id,
		members: make(map[*client]struct{}),
	}
}

// snapshot returns the current member set. Callers that need broadcast
// ordering hold r.mu themselves and use members directly instead.
func (r *room) snapshot() []*client {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*client, 0, len(r.members))
	for m := range r.members {
		out = append(out, m)
	}
	return out
}

// registry tracks live rooms. Rooms are created on first join and removed
// when the last member leaves.
type registry struct {
	mu    sync.Mutex
	rooms map[string]*room
}

func newRegistry() *registry {
	return &registry{rooms: make(map[string]*room)}
}

// get returns the room for the event, creating it when absent.
func (g *registry) get(eventID string) *room {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.rooms[eventID]
	if !ok {
		r = newRoom(eventID)
		g.rooms[eventID] = r
	}
	return r
}

// lookup returns the room for the event without creating it.
func (g *registry) lookup(eventID string) (*room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.rooms[eventID]
	return r, ok
}

// join adds the client to the event's room.
func (g *registry) join(eventID string, c *client) *room {
	r := g.get(eventID)

	r.mu.Lock()
	r.members[c] = struct{}{}
	r.mu.Unlock()

	return r
}

// leaveAll removes the client from every room, dropping rooms that empty out.
func (g *registry) leaveAll(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, r := range g.rooms {
		r.mu.Lock()
		delete(r.members, c)
		empty := len(r.members) == 0
		r.mu.Unlock()

		if empty {
			delete(g.rooms, id)
		}
	}
}
