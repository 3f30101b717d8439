package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAbortWithMappedError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	errKnown := errors.New("known failure")
	cases := []errorCase{
		{err: errKnown, status: http.StatusConflict, message: "known conflict"},
	}

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"mapped sentinel", errKnown, http.StatusConflict, "known conflict"},
		{"wrapped sentinel", fmt.Errorf("outer: %w", errKnown), http.StatusConflict, "known conflict"},
		{"unmapped error falls back", errors.New("something else"), http.StatusInternalServerError, "fallback"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) {
				abortWithMappedError(c, tc.err, cases, http.StatusInternalServerError, "fallback")
			}, func(c *gin.Context) {
				t.Fatal("expected request to abort before the next handler")
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantMessage) {
				t.Fatalf("expected body to contain %q, got %s", tc.wantMessage, rec.Body.String())
			}
		})
	}
}
