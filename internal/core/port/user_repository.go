package port

import "context"

// UserRepository exposes the single user lookup the trust layer needs: the
// gateway handshake re-checks that a credential's subject still exists.
type UserRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}
