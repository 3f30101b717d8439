package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-trust/internal/core/domain"
	"github.com/arklim/social-platform-trust/internal/usecase"
)

// Authorize evaluates the route's policy set against the identity attached
// by the auth middleware. Route parameters feed the relational policies.
func Authorize(authz *usecase.AuthzService, policies domain.PolicySet) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := make(map[string]string, 2)
		for _, key := range []string{"id", "eventId"} {
			if v := c.Param(key); v != "" {
				params[key] = v
			} else if v := c.Query(key); v != "" {
				params[key] = v
			}
		}

		err := authz.Authorize(c.Request.Context(), GetIdentity(c), policies, params)
		if err == nil {
			c.Next()
			return
		}

		abortWithMappedError(c, err, authzErrorCases,
			http.StatusForbidden, "insufficient permissions")
	}
}
