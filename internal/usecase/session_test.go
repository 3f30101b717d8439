package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/arklim/social-platform-trust/internal/core/domain"
	"github.com/arklim/social-platform-trust/internal/infra/security"
)

func newTestSessionService(t *testing.T, secret string) *SessionService {
	t.Helper()

	codec, err := security.NewCredentialCodec(secret, "trust-service", time.Hour)
	if err != nil {
		t.Fatalf("NewCredentialCodec: %v", err)
	}
	return NewSessionService(codec)
}

func TestSessionService_IssueAndVerify(t *testing.T) {
	svc := newTestSessionService(t, "test-secret")

	raw, err := svc.Issue("user-1", domain.RoleHost)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	identity, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if identity.SubjectID != "user-1" {
		t.Fatalf("expected subject user-1, got %s", identity.SubjectID)
	}
	if identity.Role != domain.RoleHost {
		t.Fatalf("expected role host, got %s", identity.Role)
	}
}

func TestSessionService_VerifyMissing(t *testing.T) {
	svc := newTestSessionService(t, "test-secret")

	if _, err := svc.Verify(""); !errors.Is(err, ErrSessionMissing) {
		t.Fatalf("expected ErrSessionMissing, got %v", err)
	}
	if _, err := svc.Verify("   "); !errors.Is(err, ErrSessionMissing) {
		t.Fatalf("expected ErrSessionMissing for whitespace, got %v", err)
	}
}

func TestSessionService_VerifyTamperedSignature(t *testing.T) {
	svc := newTestSessionService(t, "test-secret")

	raw, err := svc.Issue("user-1", domain.RoleGuest)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three credential segments, got %d", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + "forgedsignature"

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestSessionService_VerifyWrongKey(t *testing.T) {
	issuer := newTestSessionService(t, "secret-a")
	verifier := newTestSessionService(t, "secret-b")

	raw, err := issuer.Issue("user-1", domain.RoleGuest)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(raw); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestSessionService_VerifyExpired(t *testing.T) {
	codec, err := security.NewCredentialCodec("test-secret", "trust-service", time.Nanosecond)
	if err != nil {
		t.Fatalf("NewCredentialCodec: %v", err)
	}
	svc := NewSessionService(codec)

	raw, err := svc.Issue("user-1", domain.RoleGuest)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := svc.Verify(raw); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestSessionService_VerifyUnknownRole(t *testing.T) {
	codec, err := security.NewCredentialCodec("test-secret", "trust-service", time.Hour)
	if err != nil {
		t.Fatalf("NewCredentialCodec: %v", err)
	}
	svc := NewSessionService(codec)

	raw, err := codec.Sign("user-1", "superuser")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := svc.Verify(raw); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for unknown role, got %v", err)
	}
}

func TestSessionService_IssueRejectsUnknownRole(t *testing.T) {
	svc := newTestSessionService(t, "test-secret")

	if _, err := svc.Issue("user-1", domain.Role("superuser")); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}
