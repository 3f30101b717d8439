package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-trust/internal/infra/config"
	"github.com/arklim/social-platform-trust/internal/infra/security"
	"github.com/arklim/social-platform-trust/internal/usecase"
)

// ErrorResponse matches the handlers.ErrorResponse structure
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// newErrorResponse creates an error response with trace ID
func newErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:   errorMsg,
		TraceID: GetTraceID(c),
	}
}

func sessionCookie(c *gin.Context, cookieName string) string {
	return security.ParseCookies(c.GetHeader("Cookie"))[cookieName]
}

func clearSessionCookie(c *gin.Context, cfg config.SessionSettings) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

// RequireAuth verifies the session credential cookie and attaches the
// identity to the request. Failed verification clears the cookie so broken
// clients stop resending a credential that can never verify.
func RequireAuth(sessions *usecase.SessionService, cfg config.SessionSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := sessionCookie(c, cfg.CookieName)

		identity, err := sessions.Verify(raw)
		if err != nil {
			if !errors.Is(err, usecase.ErrSessionMissing) {
				clearSessionCookie(c, cfg)
			}

			abortWithMappedError(c, err, sessionErrorCases,
				http.StatusUnauthorized, "invalid session")
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid credential is present and
// continues anonymously otherwise. Routes with an empty policy set use this
// so public listings can still personalize.
func OptionalAuth(sessions *usecase.SessionService, cfg config.SessionSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := sessionCookie(c, cfg.CookieName)
		if raw == "" {
			c.Next()
			return
		}

		identity, err := sessions.Verify(raw)
		if err != nil {
			clearSessionCookie(c, cfg)
			c.Next()
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}
