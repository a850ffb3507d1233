// Package main is the entry point for the print quote API server.
//
// @title           Print Quote Service API
// @version         1.0.0
// @description     Estimates, stores and exports print job quotes.
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/print-quote-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8001
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Staff access token as "Bearer <token>".
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for staff routes when auth is enabled without staff accounts.
//
// @tag.name        Quotes
// @tag.description Print job quotes
//
// @tag.name        Auth
// @tag.description Staff authentication
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/print-quote-service/docs" // swagger docs

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/app"
)

func main() {
	// a missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(application.Router, cfg.Server.Port)
	server.OnShutdown(application.Close)

	if err := server.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
