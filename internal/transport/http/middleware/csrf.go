package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-trust/internal/infra/config"
	"github.com/arklim/social-platform-trust/internal/infra/security"
)

// safeMethods never mutate state and are exempt from anti-forgery checks.
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// EnsureCSRFToken issues a signed anti-forgery cookie when the request does
// not already carry a valid one. Issuance is idempotent: a valid cookie is
// left alone so parallel tabs do not race each other's tokens.
func EnsureCSRFToken(signer *security.CSRFSigner, cfg config.CSRFSettings, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		existing := security.ParseCookies(c.GetHeader("Cookie"))[cfg.CookieName]
		if existing != "" {
			if _, ok := signer.Parse(existing); ok {
				c.Next()
				return
			}
		}

		pair, err := signer.Generate()
		if err != nil {
			log.Error("csrf token generation failed", zap.Error(err))
			c.Next()
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, pair.CookieValue(), 0, "/", "", cfg.CookieSecure, true)
		c.Next()
	}
}

// CSRFGuard enforces the double-submit check on state-changing requests. The
// client echoes the token through a header or form field; the cookie carries
// the signed pair. Both halves must agree.
func CSRFGuard(signer *security.CSRFSigner, cfg config.CSRFSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		if safeMethods[c.Request.Method] {
			c.Next()
			return
		}

		cookieValue := security.ParseCookies(c.GetHeader("Cookie"))[cfg.CookieName]
		if cookieValue == "" {
			c.AbortWithStatusJSON(http.StatusForbidden,
				newErrorResponse(c, "csrf token missing"))
			return
		}

		supplied := c.GetHeader(cfg.HeaderName)
		if supplied == "" {
			supplied = c.PostForm(cfg.FormField)
		}

		if !signer.Match(cookieValue, supplied) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				newErrorResponse(c, "csrf token invalid"))
			return
		}

		c.Next()
	}
}
