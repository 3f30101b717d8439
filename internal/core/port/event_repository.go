package port

import "context"

// EventRepository exposes the event lookups the trust layer needs. Full event
// CRUD lives in the business layer; ownership and existence are all the
// decision engine and the gateway consult.
type EventRepository interface {
	// GetOwner returns the host user id for the event, or
	// repository.ErrNotFound when no such event exists.
	GetOwner(ctx context.Context, eventID string) (string, error)
	// Exists reports whether the event exists.
	Exists(ctx context.Context, eventID string) (bool, error)
}
