package usecase

import (
	"context"
	"errors"
	"testing"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-trust/internal/core/domain"
	"github.com/arklim/social-platform-trust/internal/repository"
)

type stubEventRepo struct {
	getOwnerFn func(ctx context.Context, eventID string) (string, error)
	existsFn   func(ctx context.Context, eventID string) (bool, error)
}

func (s *stubEventRepo) GetOwner(ctx context.Context, eventID string) (string, error) {
	if s.getOwnerFn != nil {
		return s.getOwnerFn(ctx, eventID)
	}
	return "", repository.ErrNotFound
}

func (s *stubEventRepo) Exists(ctx context.Context, eventID string) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, eventID)
	}
	return false, nil
}

func newTestAuthz(repo *stubEventRepo) *AuthzService {
	if repo == nil {
		repo = &stubEventRepo{}
	}
	return NewAuthzService(repo, zap.NewNop())
}

func identityWith(role domain.Role) *domain.Identity {
	return &domain.Identity{SubjectID: "user-1", Role: role}
}

func TestAuthorize_EmptyPolicySetAllowsAnonymous(t *testing.T) {
	svc := newTestAuthz(nil)

	if err := svc.Authorize(context.Background(), nil, nil, nil); err != nil {
		t.Fatalf("expected empty policy set to allow, got %v", err)
	}
	if err := svc.Authorize(context.Background(), identityWith(domain.RoleGuest), domain.PolicySet{}, nil); err != nil {
		t.Fatalf("expected empty policy set to allow identity, got %v", err)
	}
}

func TestAuthorize_MissingIdentityFailsAuthentication(t *testing.T) {
	svc := newTestAuthz(nil)

	err := svc.Authorize(context.Background(), nil, domain.RequireRoles(domain.RoleGuest), nil)
	if !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestAuthorize_AdminBypassesEverything(t *testing.T) {
	svc := newTestAuthz(&stubEventRepo{
		getOwnerFn: func(context.Context, string) (string, error) {
			t.Fatalf("admin bypass must not consult the repository")
			return "", nil
		},
	})

	policies := domain.PolicySet{domain.EventOwner, domain.Self}
	if err := svc.Authorize(context.Background(), identityWith(domain.RoleAdmin), policies, nil); err != nil {
		t.Fatalf("expected admin to be allowed, got %v", err)
	}
}

func TestAuthorize_RoleMatching(t *testing.T) {
	svc := newTestAuthz(nil)

	cases := []struct {
		name     string
		role     domain.Role
		policies domain.PolicySet
		want     error
	}{
		{"host allowed by host policy", domain.RoleHost, domain.RequireRoles(domain.RoleHost), nil},
		{"guest denied by host policy", domain.RoleGuest, domain.RequireRoles(domain.RoleHost), ErrForbidden},
		{"guest allowed by guest-or-host", domain.RoleGuest, domain.RequireRoles(domain.RoleGuest, domain.RoleHost), nil},
		{"host allowed by guest-or-host", domain.RoleHost, domain.RequireRoles(domain.RoleGuest, domain.RoleHost), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Authorize(context.Background(), identityWith(tc.role), tc.policies, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthorize_SelfMatchesEveryRole(t *testing.T) {
	svc := newTestAuthz(nil)
	policies := domain.PolicySet{domain.Self}

	for _, role := range []domain.Role{domain.RoleGuest, domain.RoleHost, domain.RoleAdmin} {
		identity := &domain.Identity{SubjectID: "user-7", Role: role}

		if err := svc.Authorize(context.Background(), identity, policies, map[string]string{"id": "user-7"}); err != nil {
			t.Fatalf("role %s: expected self match, got %v", role, err)
		}
	}

	err := svc.Authorize(context.Background(), identityWith(domain.RoleHost), policies, map[string]string{"id": "someone-else"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign id, got %v", err)
	}
}

func TestAuthorize_SelfIgnoresMissingParam(t *testing.T) {
	svc := newTestAuthz(nil)

	err := svc.Authorize(context.Background(), identityWith(domain.RoleGuest), domain.PolicySet{domain.Self}, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden without id param, got %v", err)
	}
}

func TestAuthorize_EventOwner(t *testing.T) {
	eventID := uuid.NewString()

	svc := newTestAuthz(&stubEventRepo{
		getOwnerFn: func(_ context.Context, id string) (string, error) {
			if id == eventID {
				return "user-1", nil
			}
			return "", repository.ErrNotFound
		},
	})

	policies := domain.PolicySet{domain.EventOwner}
	params := map[string]string{"id": eventID}

	if err := svc.Authorize(context.Background(), identityWith(domain.RoleHost), policies, params); err != nil {
		t.Fatalf("expected owner to be allowed, got %v", err)
	}

	other := &domain.Identity{SubjectID: "user-2", Role: domain.RoleHost}
	err := svc.Authorize(context.Background(), other, policies, params)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected non-owner host to be denied, got %v", err)
	}
}

func TestAuthorize_EventOwnerFallsBackToEventIDParam(t *testing.T) {
	eventID := uuid.NewString()

	svc := newTestAuthz(&stubEventRepo{
		getOwnerFn: func(_ context.Context, id string) (string, error) {
			if id == eventID {
				return "user-1", nil
			}
			return "", repository.ErrNotFound
		},
	})

	params := map[string]string{"eventId": eventID}
	if err := svc.Authorize(context.Background(), identityWith(domain.RoleHost), domain.PolicySet{domain.EventOwner}, params); err != nil {
		t.Fatalf("expected owner to be allowed through eventId param, got %v", err)
	}
}

func TestAuthorize_EventOwnerNonexistentEventDenies(t *testing.T) {
	svc := newTestAuthz(&stubEventRepo{
		getOwnerFn: func(context.Context, string) (string, error) {
			return "", repository.ErrNotFound
		},
	})

	params := map[string]string{"id": uuid.NewString()}
	err := svc.Authorize(context.Background(), identityWith(domain.RoleHost), domain.PolicySet{domain.EventOwner}, params)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for nonexistent event, got %v", err)
	}
}

func TestAuthorize_EventOwnerRepositoryErrorDenies(t *testing.T) {
	svc := newTestAuthz(&stubEventRepo{
		getOwnerFn: func(context.Context, string) (string, error) {
			return "", errors.New("connection reset")
		},
	})

	params := map[string]string{"id": uuid.NewString()}
	err := svc.Authorize(context.Background(), identityWith(domain.RoleHost), domain.PolicySet{domain.EventOwner}, params)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected fail-closed deny, got %v", err)
	}
}

func TestAuthorize_EventOwnerInvalidResourceID(t *testing.T) {
	svc := newTestAuthz(nil)

	cases := []map[string]string{
		nil,
		{"id": "not-a-uuid"},
		{"eventId": "also-not-a-uuid"},
	}

	for _, params := range cases {
		err := svc.Authorize(context.Background(), identityWith(domain.RoleHost), domain.PolicySet{domain.EventOwner}, params)
		if !errors.Is(err, ErrInvalidResourceID) {
			t.Fatalf("params %v: expected ErrInvalidResourceID, got %v", params, err)
		}
	}
}

func TestAuthorize_SelfTriedBeforeEventOwner(t *testing.T) {
	svc := newTestAuthz(&stubEventRepo{
		getOwnerFn: func(context.Context, string) (string, error) {
			t.Fatalf("self match must short-circuit the ownership lookup")
			return "", nil
		},
	})

	policies := domain.PolicySet{domain.Self, domain.EventOwner}
	if err := svc.Authorize(context.Background(), identityWith(domain.RoleGuest), policies, map[string]string{"id": "user-1"}); err != nil {
		t.Fatalf("expected self match to allow, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(nil); got != "public" {
		t.Fatalf("expected public, got %s", got)
	}

	policies := domain.PolicySet{domain.RolePolicy{Role: domain.RoleHost}, domain.Self, domain.EventOwner}
	if got := Describe(policies); got != "host|self|event_owner" {
		t.Fatalf("unexpected description: %s", got)
	}
}
