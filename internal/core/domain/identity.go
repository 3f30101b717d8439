package domain

// Role enumerates the platform's concrete account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// Valid reports whether the role is one of the known concrete roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHost, RoleGuest:
		return true
	}
	return false
}

// Identity is the verified in-memory projection of a session credential.
// It lives for the duration of one request or one realtime connection and
// is never persisted.
type Identity struct {
	SubjectID string
	Role      Role
}
