package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-trust/internal/infra/config"
	"github.com/arklim/social-platform-trust/internal/infra/security"
)

// CSRFHandler hands the anti-forgery token value to clients that cannot read
// it from a cookie (the cookie is httpOnly).
type CSRFHandler struct {
	signer *security.CSRFSigner
	cfg    config.CSRFSettings
	logger *zap.Logger
}

// NewCSRFHandler builds the handler.
func NewCSRFHandler(signer *security.CSRFSigner, cfg config.CSRFSettings, logger *zap.Logger) *CSRFHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSRFHandler{signer: signer, cfg: cfg, logger: logger}
}

// Token returns the current anti-forgery token value, minting a fresh pair
// when the request does not carry a valid cookie.
func (h *CSRFHandler) Token(c *gin.Context) {
	if existing := security.ParseCookies(c.GetHeader("Cookie"))[h.cfg.CookieName]; existing != "" {
		if value, ok := h.signer.Parse(existing); ok {
			c.JSON(http.StatusOK, CSRFTokenResponse{Token: value})
			return
		}
	}

	pair, err := h.signer.Generate()
	if err != nil {
		h.logger.Error("csrf token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "could not issue csrf token"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, pair.CookieValue(), 0, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, CSRFTokenResponse{Token: pair.Value})
}
