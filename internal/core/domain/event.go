package domain

import "time"

// Event is a social event. The trust layer only cares about ownership; the
// rest of the row belongs to the business CRUD layer.
type Event struct {
	ID        string
	HostID    string
	Title     string
	StartsAt  time.Time
	CreatedAt time.Time
}

// Message is a chat message scoped to one event's room. ID and CreatedAt are
// assigned by storage on insert; ordering within a room is defined by
// insertion order, not by client clocks.
type Message struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
