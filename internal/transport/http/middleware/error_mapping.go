package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-trust/internal/usecase"
)

// errorCase maps a sentinel error to an HTTP status code and response message.
type errorCase struct {
	err     error
	status  int
	message string
}

var sessionErrorCases = []errorCase{
	{err: usecase.ErrSessionMissing, status: http.StatusUnauthorized, message: "authentication required"},
	{err: usecase.ErrSessionExpired, status: http.StatusUnauthorized, message: "session expired"},
}

var authzErrorCases = []errorCase{
	{err: usecase.ErrAuthenticationRequired, status: http.StatusUnauthorized, message: "authentication required"},
	{err: usecase.ErrInvalidResourceID, status: http.StatusBadRequest, message: "invalid resource id"},
}

// abortWithMappedError resolves the provided error against known cases or
// falls back to the generic response, aborting the request either way.
func abortWithMappedError(c *gin.Context, err error, cases []errorCase, fallbackStatus int, fallbackMessage string) {
	for _, cs := range cases {
		if cs.err == nil {
			continue
		}
		if errors.Is(err, cs.err) {
			c.AbortWithStatusJSON(cs.status, newErrorResponse(c, cs.message))
			return
		}
	}

	c.AbortWithStatusJSON(fallbackStatus, newErrorResponse(c, fallbackMessage))
}
