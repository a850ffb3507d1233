package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/print-quote-service/internal/metrics"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit  int
	RateWindow time.Duration
	// RequestTimeout bounds every /api request; zero disables it.
	RequestTimeout time.Duration
	// EnableAuth guards the staff routes with AuthService tokens, or with APIKeys
	// when no AuthService is set.
	EnableAuth  bool
	APIKeys     map[string]bool
	Idempotency middleware.IdempotencyConfig
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string

	LoggingService service.LoggingService
	AuthService    service.AuthService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: 30 * time.Second,
		Idempotency:    middleware.DefaultIdempotencyConfig(),
	}
}

// NewRouter creates and configures the Gin router for the quote service.
func NewRouter(quoteHandler *QuoteHandler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	if cfg.AuthService != nil {
		NewAuthRoutes(cfg.AuthService).RegisterPublicRoutes(api)
	}
	if quoteHandler != nil {
		routes := NewQuoteRoutes(quoteHandler)
		routes.RegisterPublicRoutes(api, &cfg)
		routes.RegisterProtectedRoutes(staffGroup(api, &cfg), &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	if cfg.LoggingService != nil {
		router.Use(func(c *gin.Context) {
			c.Set(string(middleware.LoggingServiceKey), cfg.LoggingService)
			c.Next()
		})
	}

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// staffGroup returns the group for routes that change or reveal quote state.
func staffGroup(api *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	staff := api.Group("")
	if !cfg.EnableAuth {
		return staff
	}

	switch {
	case cfg.AuthService != nil:
		staff.Use(middleware.StaffJWTAuth(cfg.AuthService))
		if cfg.RateLimit > 0 {
			limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
			staff.Use(limiter.StaffRateLimit())
		}
	case len(cfg.APIKeys) > 0:
		staff.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
	return staff
}
