package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arklim/social-platform-trust/internal/core/domain"
)

const (
	// TraceIDHeader is the HTTP header name for trace ID
	TraceIDHeader = "X-Trace-ID"
	// TraceIDKey is the context key for trace ID
	TraceIDKey = "trace_id"
	// IdentityKey is the context key for the verified identity
	IdentityKey = "identity"
)

// EnrichContext adds a trace ID to each request and echoes it in the response.
func EnrichContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set(TraceIDKey, traceID)
		c.Header(TraceIDHeader, traceID)

		c.Next()
	}
}

// GetTraceID retrieves the trace ID from the context
func GetTraceID(c *gin.Context) string {
	if traceID, exists := c.Get(TraceIDKey); exists {
		if id, ok := traceID.(string); ok {
			return id
		}
	}
	return ""
}

// SetIdentity stores the verified identity on the request context.
func SetIdentity(c *gin.Context, identity *domain.Identity) {
	c.Set(IdentityKey, identity)
}

// GetIdentity retrieves the verified identity, if any, from the context.
func GetIdentity(c *gin.Context) *domain.Identity {
	if v, exists := c.Get(IdentityKey); exists {
		if identity, ok := v.(*domain.Identity); ok {
			return identity
		}
	}
	return nil
}
