package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-trust/internal/core/domain"
	"github.com/arklim/social-platform-trust/internal/infra/config"
	"github.com/arklim/social-platform-trust/internal/infra/security"
	"github.com/arklim/social-platform-trust/internal/transport/http/handlers"
	"github.com/arklim/social-platform-trust/internal/transport/http/middleware"
	"github.com/arklim/social-platform-trust/internal/usecase"
)

const csrfTokenLimitPerWindow = 60

// BusinessHandlers carries the event platform's CRUD handlers. The trust
// layer owns the guard chains around these routes, not their bodies; a nil
// handler answers 501 so the route table stays complete and testable.
type BusinessHandlers struct {
	ListEvents  gin.HandlerFunc
	CreateEvent gin.HandlerFunc
	UpdateEvent gin.HandlerFunc
	DeleteEvent gin.HandlerFunc
	RSVP        gin.HandlerFunc
	RateEvent   gin.HandlerFunc
	UpdateUser  gin.HandlerFunc
	ListUsers   gin.HandlerFunc
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.HTTPMetrics
	Sessions    *usecase.SessionService
	Authz       *usecase.AuthzService
	CSRFSigner  *security.CSRFSigner
	Gateway     http.Handler
	Database    DatabaseChecker
	Cache       CacheChecker
	Business    BusinessHandlers
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	requireAuth := middleware.RequireAuth(deps.Sessions, deps.Config.Session)
	optionalAuth := middleware.OptionalAuth(deps.Sessions, deps.Config.Session)
	csrfIssue := middleware.EnsureCSRFToken(deps.CSRFSigner, deps.Config.CSRF, deps.Logger)
	csrfGuard := middleware.CSRFGuard(deps.CSRFSigner, deps.Config.CSRF)

	authorize := func(policies domain.PolicySet) gin.HandlerFunc {
		return middleware.Authorize(deps.Authz, policies)
	}

	checks := map[string]handlers.ReadinessCheck{}
	if deps.Database != nil {
		checks["database"] = deps.Database.Ping
	}
	if deps.Cache != nil {
		checks["redis"] = deps.Cache.HealthCheck
	}

	healthHandler := handlers.NewHealthHandler(checks)
	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if deps.Gateway != nil {
		wsHandlers := buildHandshakeMiddlewares(deps)
		wsHandlers = append(wsHandlers, gin.WrapH(deps.Gateway))
		r.GET("/ws", wsHandlers...)
	}

	csrfHandler := handlers.NewCSRFHandler(deps.CSRFSigner, deps.Config.CSRF, deps.Logger)
	sessionHandler := handlers.NewSessionHandler(deps.Config.Session)

	api := r.Group("/api/v1")
	api.Use(csrfIssue)
	{
		tokenHandlers := buildTokenMiddlewares(deps)
		tokenHandlers = append(tokenHandlers, csrfHandler.Token)
		api.GET("/csrf-token", tokenHandlers...)

		session := api.Group("/session")
		session.GET("/me", requireAuth, sessionHandler.Me)
		session.POST("/logout", requireAuth, csrfGuard, sessionHandler.Logout)

		events := api.Group("/events")
		events.GET("",
			optionalAuth,
			authorize(nil),
			business(deps.Business.ListEvents))
		events.POST("",
			requireAuth, csrfGuard,
			authorize(domain.RequireRoles(domain.RoleHost)),
			business(deps.Business.CreateEvent))
		events.PUT("/:id",
			requireAuth, csrfGuard,
			authorize(domain.PolicySet{domain.EventOwner}),
			business(deps.Business.UpdateEvent))
		events.DELETE("/:id",
			requireAuth, csrfGuard,
			authorize(domain.PolicySet{domain.EventOwner}),
			business(deps.Business.DeleteEvent))
		events.POST("/:eventId/rsvp",
			requireAuth, csrfGuard,
			authorize(domain.RequireRoles(domain.RoleGuest, domain.RoleHost)),
			business(deps.Business.RSVP))
		events.POST("/:eventId/ratings",
			requireAuth, csrfGuard,
			authorize(domain.RequireRoles(domain.RoleGuest, domain.RoleHost)),
			business(deps.Business.RateEvent))

		users := api.Group("/users")
		users.PUT("/:id",
			requireAuth, csrfGuard,
			authorize(domain.PolicySet{domain.Self}),
			business(deps.Business.UpdateUser))

		admin := api.Group("/admin")
		admin.GET("/users",
			requireAuth,
			authorize(domain.RequireRoles(domain.RoleAdmin)),
			business(deps.Business.ListUsers))
	}

	return r
}

func business(h gin.HandlerFunc) gin.HandlerFunc {
	if h != nil {
		return h
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusNotImplemented, handlers.NewErrorResponse(c, "not implemented"))
	}
}

func buildTokenMiddlewares(deps Dependencies) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil {
		return nil
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		return nil
	}

	rule := middleware.RateLimitRule{
		Name:       "csrf_token",
		Limit:      csrfTokenLimitPerWindow,
		Window:     window,
		Identifier: middleware.ClientIPIdentifier(),
	}

	return []gin.HandlerFunc{deps.RateLimiter.RateLimit(rule)}
}

func buildHandshakeMiddlewares(deps Dependencies) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil {
		return nil
	}

	limit := deps.Config.Gateway.HandshakeMaxPerIP
	if limit <= 0 {
		return nil
	}

	rule := middleware.RateLimitRule{
		Name:       "ws_handshake",
		Limit:      limit,
		Window:     deps.Config.RateLimit.WindowDuration,
		Identifier: middleware.ClientIPIdentifier(),
	}

	return []gin.HandlerFunc{deps.RateLimiter.RateLimit(rule)}
}
