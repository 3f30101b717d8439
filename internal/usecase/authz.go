package usecase

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-trust/internal/core/domain"
	"github.com/arklim/social-platform-trust/internal/core/port"
	"github.com/arklim/social-platform-trust/internal/repository"
)

var (
	// ErrAuthenticationRequired indicates a protected operation was attempted
	// without a verified identity.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrForbidden indicates the identity satisfies no policy in the set.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidResourceID indicates an ownership check could not identify
	// its target resource.
	ErrInvalidResourceID = errors.New("invalid resource id")
)

// AuthzService evaluates policy sets against verified identities. Decisions
// are pure except for ownership checks, which consult the event repository.
type AuthzService struct {
	events port.EventRepository
	logger *zap.Logger
}

// NewAuthzService constructs the decision engine.
func NewAuthzService(events port.EventRepository, logger *zap.Logger) *AuthzService {
	return &AuthzService{events: events, logger: logger}
}

// Authorize evaluates the policy set and returns nil when access is granted.
// Params carry route parameters; ownership checks read "id" first and fall
// back to "eventId".
//
// Precedence: an empty set allows anyone, including anonymous requests. A
// non-empty set with no identity fails authentication before any policy is
// looked at. ADMIN bypasses everything else. SELF and EVENT_OWNER are tried
// before plain role matching so a GUEST can still edit their own profile.
// Anything unmatched denies.
func (s *AuthzService) Authorize(ctx context.Context, identity *domain.Identity, policies domain.PolicySet, params map[string]string) error {
	if len(policies) == 0 {
		return nil
	}

	if identity == nil {
		return ErrAuthenticationRequired
	}

	if identity.Role == domain.RoleAdmin {
		return nil
	}

	if policies.ContainsSelf() {
		if subjectID := params["id"]; subjectID != "" && subjectID == identity.SubjectID {
			return nil
		}
	}

	if policies.ContainsEventOwner() {
		ok, err := s.isEventOwner(ctx, identity, params)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	for _, role := range policies.ConcreteRoles() {
		if identity.Role == role {
			return nil
		}
	}

	return ErrForbidden
}

// isEventOwner resolves the target event id from route parameters and
// compares its host to the identity. Lookup failures deny rather than
// propagate: the engine never grants on uncertainty.
func (s *AuthzService) isEventOwner(ctx context.Context, identity *domain.Identity, params map[string]string) (bool, error) {
	eventID := s.resolveEventID(params)
	if eventID == "" {
		return false, ErrInvalidResourceID
	}

	hostID, err := s.events.GetOwner(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		s.logger.Warn("ownership lookup failed, denying",
			zap.String("event_id", eventID),
			zap.Error(err),
		)
		return false, nil
	}

	return hostID == identity.SubjectID, nil
}

func (s *AuthzService) resolveEventID(params map[string]string) string {
	if id := params["id"]; id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	if id := params["eventId"]; id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return ""
}

// Describe renders a policy set for logs.
func Describe(policies domain.PolicySet) string {
	if len(policies) == 0 {
		return "public"
	}

	out := ""
	for i, p := range policies {
		if i > 0 {
			out += "|"
		}
		switch v := p.(type) {
		case domain.RolePolicy:
			out += string(v.Role)
		case domain.SelfPolicy:
			out += "self"
		case domain.EventOwnerPolicy:
			out += "event_owner"
		default:
			out += fmt.Sprintf("%T", p)
		}
	}
	return out
}
