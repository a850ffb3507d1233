// Package app provides authentication initialization.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/service"
)

// adminBootstrapper is the part of the auth service used at startup.
type adminBootstrapper interface {
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}

// initializeAuth builds the staff auth service. It returns nil when auth is
// disabled or there is no staff store, in which case staff routes fall back to
// API keys or stay open.
func initializeAuth(cfg config.AuthConfig, staffRepo repository.StaffRepositoryInterface) service.AuthService {
	if !cfg.Enabled || staffRepo == nil {
		return nil
	}

	auth := service.NewAuthService(staffRepo, service.NewTokenService(service.NewTokenConfigFromAuthConfig(cfg)))
	ensureAdmin(auth, cfg.AdminEmail, cfg.AdminPassword)
	return auth
}

// ensureAdmin creates the bootstrap staff account when credentials are configured.
func ensureAdmin(auth adminBootstrapper, email, password string) {
	if email == "" || password == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := auth.EnsureAdmin(ctx, email, password); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Failed to create staff admin")
	}
}
