// Package app provides database initialization and setup.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/metrics"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/service"
)

// Circuit breaker names, also used as metric labels and readiness check keys.
const (
	QuotesCircuit = "mongodb_quotes"
	StaffCircuit  = "mongodb_staff"
	LogsCircuit   = "mongodb_logs"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB             *repository.MongoDB
	QuoteRepo      repository.QuoteRepositoryInterface
	StaffRepo      repository.StaffRepositoryInterface
	LoggingService service.LoggingService

	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories, each behind
// its own circuit breaker. It returns nil, nil when the database is disabled.
func InitializeDatabase(cfg config.DatabaseConfig) (*DatabaseComponents, error) {
	if !cfg.Enabled {
		log.Warn().Msg("MongoDB disabled - quote routes will not be mounted")
		return nil, nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if cfg.LogsTTL > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index")
		}
		cancel()
	}

	breakers := map[string]*circuitbreaker.CircuitBreaker{
		QuotesCircuit: newCircuitBreaker(cfg, QuotesCircuit),
		StaffCircuit:  newCircuitBreaker(cfg, StaffCircuit),
		LogsCircuit:   newCircuitBreaker(cfg, LogsCircuit),
	}

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), breakers[LogsCircuit])

	return &DatabaseComponents{
		DB:              db,
		QuoteRepo:       repository.NewQuoteRepositoryWithCircuitBreaker(repository.NewQuoteRepository(db), breakers[QuotesCircuit]),
		StaffRepo:       repository.NewStaffRepositoryWithCircuitBreaker(repository.NewStaffRepository(db), breakers[StaffCircuit]),
		LoggingService:  service.NewLoggingService(logsRepo),
		CircuitBreakers: breakers,
	}, nil
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})
}
