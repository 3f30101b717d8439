package usecase

import (
	"errors"
	"fmt"

	"github.com/arklim/social-platform-trust/internal/core/domain"
	"github.com/arklim/social-platform-trust/internal/infra/security"
)

var (
	// ErrSessionMissing indicates the request carried no session credential.
	ErrSessionMissing = errors.New("session missing")
	// ErrSessionInvalid indicates the credential failed signature or claim checks.
	ErrSessionInvalid = errors.New("session invalid")
	// ErrSessionExpired indicates the credential has passed its expiry.
	ErrSessionExpired = errors.New("session expired")
)

// SessionService turns raw session credentials into verified identities. It
// holds no session state; the credential is the session.
type SessionService struct {
	codec *security.CredentialCodec
}

// NewSessionService constructs a session service over the given codec.
func NewSessionService(codec *security.CredentialCodec) *SessionService {
	return &SessionService{codec: codec}
}

// Issue signs a credential asserting the subject and role. Used by the logout
// counterpart flows and by tests; credential issuance on login belongs to the
// identity service.
func (s *SessionService) Issue(subjectID string, role domain.Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", role)
	}
	return s.codec.Sign(subjectID, string(role))
}

// Verify validates the raw credential and returns the identity it asserts.
// All failures collapse into the missing/invalid/expired taxonomy; callers
// treat each as an unauthenticated request.
func (s *SessionService) Verify(raw string) (*domain.Identity, error) {
	claims, err := s.codec.Verify(raw)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrCredentialMissing):
			return nil, ErrSessionMissing
		case errors.Is(err, security.ErrCredentialExpired):
			return nil, ErrSessionExpired
		default:
			return nil, ErrSessionInvalid
		}
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return nil, ErrSessionInvalid
	}

	return &domain.Identity{
		SubjectID: claims.Subject,
		Role:      role,
	}, nil
}
