// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/http"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/repository"
)

// Application is the wired quote server.
type Application struct {
	Router *gin.Engine

	database *DatabaseComponents
	services *ServiceComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*Application, error) {
	InitializeLogger()

	db, err := InitializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	var quoteRepo repository.QuoteRepositoryInterface
	if db != nil {
		quoteRepo = db.QuoteRepo
	}
	services, err := InitializeServices(cfg, quoteRepo)
	if err != nil {
		_ = db.Close(context.Background())
		return nil, err
	}

	return assemble(cfg, db, services), nil
}

func assemble(cfg config.Config, db *DatabaseComponents, services *ServiceComponents) *Application {
	if db != nil && db.LoggingService != nil {
		middleware.InitAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	components := InitializeRouter(services, db, cfg)
	return &Application{
		Router:   http.NewRouter(components.QuoteHandler, components.HealthHandler, components.Config),
		database: db,
		services: services,
	}
}

// Close flushes pending audit entries, stops the document cache and disconnects
// from MongoDB. It is registered as a server shutdown hook.
func (a *Application) Close(ctx context.Context) error {
	middleware.StopAsyncLogger()
	if a.services != nil && a.services.Documents != nil {
		a.services.Documents.Stop()
	}
	return a.database.Close(ctx)
}
