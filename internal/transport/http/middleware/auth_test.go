package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-trust/internal/core/domain"
	"github.com/arklim/social-platform-trust/internal/infra/config"
	"github.com/arklim/social-platform-trust/internal/infra/security"
	"github.com/arklim/social-platform-trust/internal/usecase"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *usecase.SessionService, config.SessionSettings) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := security.NewCredentialCodec("middleware-test-secret", "trust-service", time.Hour)
	if err != nil {
		t.Fatalf("NewCredentialCodec: %v", err)
	}
	sessions := usecase.NewSessionService(codec)

	cfg := config.SessionSettings{CookieName: "sp_session"}

	r := gin.New()
	r.GET("/protected", RequireAuth(sessions, cfg), func(c *gin.Context) {
		identity := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"subject": identity.SubjectID, "role": string(identity.Role)})
	})
	r.GET("/public", OptionalAuth(sessions, cfg), func(c *gin.Context) {
		if identity := GetIdentity(c); identity != nil {
			c.JSON(http.StatusOK, gin.H{"subject": identity.SubjectID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": nil})
	})

	return r, sessions, cfg
}

func TestRequireAuth_ValidCredential(t *testing.T) {
	r, sessions, cfg := newAuthTestRouter(t)

	raw, err := sessions.Issue("user-1", domain.RoleHost)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Cookie", cfg.CookieName+"="+raw)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuth_MissingCredential(t *testing.T) {
	r, _, _ := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_TamperedCredentialClearsCookie(t *testing.T) {
	r, _, cfg := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Cookie", cfg.CookieName+"=not.a.credential")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == cfg.CookieName && c.MaxAge < 0 {
			cleared = true
			if c.SameSite != http.SameSiteLaxMode {
				t.Fatalf("expected SameSite=Lax on cleared cookie, got %v", c.SameSite)
			}
		}
	}
	if !cleared {
		t.Fatalf("expected session cookie to be cleared")
	}
}

func TestOptionalAuth_AnonymousPasses(t *testing.T) {
	r, _, _ := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOptionalAuth_InvalidCredentialTreatedAnonymous(t *testing.T) {
	r, _, cfg := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Cookie", cfg.CookieName+"=garbage")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous fallback, got %d", w.Code)
	}
}

func TestOptionalAuth_AttachesIdentity(t *testing.T) {
	r, sessions, cfg := newAuthTestRouter(t)

	raw, err := sessions.Issue("user-9", domain.RoleGuest)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Cookie", cfg.CookieName+"="+raw)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "user-9") {
		t.Fatalf("expected identity in response, got %s", body)
	}
}
