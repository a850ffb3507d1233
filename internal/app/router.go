// Package app provides router configuration.
package app

import (
	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/http"
	"github.com/guttosm/print-quote-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	QuoteHandler  *http.QuoteHandler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the handlers and router configuration. Either
// component may be nil when MongoDB is disabled.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	var (
		loggingService service.LoggingService
		authService    service.AuthService
	)
	if db != nil {
		loggingService = db.LoggingService
		authService = initializeAuth(cfg.Auth, db.StaffRepo)

		if db.DB != nil {
			healthHandler.RegisterChecker(http.DatabaseCheck, http.HealthCheckFunc(db.DB.HealthCheck))
		}
		for name, cb := range db.CircuitBreakers {
			healthHandler.RegisterCircuitBreaker(name, cb)
		}
	}

	var quoteHandler *http.QuoteHandler
	if services != nil && services.Quotes != nil {
		quoteHandler = http.NewQuoteHandler(services.Quotes, loggingService)
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.EnableAuth = cfg.Auth.Enabled
	routerCfg.APIKeys = cfg.Auth.APIKeys
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	routerCfg.LoggingService = loggingService
	routerCfg.AuthService = authService

	return &RouterComponents{
		QuoteHandler:  quoteHandler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
