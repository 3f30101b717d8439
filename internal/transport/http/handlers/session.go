package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-trust/internal/infra/config"
	"github.com/arklim/social-platform-trust/internal/transport/http/middleware"
)

// SessionHandler exposes the session-facing endpoints that do not belong to
// the identity service: introspection and logout.
type SessionHandler struct {
	cfg config.SessionSettings
}

// NewSessionHandler builds the handler.
func NewSessionHandler(cfg config.SessionSettings) *SessionHandler {
	return &SessionHandler{cfg: cfg}
}

// Me returns the verified identity attached by the auth middleware.
func (h *SessionHandler) Me(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	c.JSON(http.StatusOK, IdentityResponse{
		SubjectID: identity.SubjectID,
		Role:      string(identity.Role),
	})
}

// Logout clears the session cookie. The credential itself stays valid until
// expiry; with no session store there is nothing server-side to revoke.
func (h *SessionHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}
