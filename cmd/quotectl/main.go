// Package main is the terminal host for the print quote form.
//
// quotectl walks the quote form field by field, submits it to the quote API
// and can save the returned PDF locally.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/client"
	"github.com/guttosm/print-quote-service/internal/form"
	"github.com/guttosm/print-quote-service/internal/logger"
	"github.com/guttosm/print-quote-service/internal/terminal"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load().Client

	var (
		backendURL = flag.String("url", cfg.BackendURL, "quote API base URL (QUOTE_BACKEND_URL)")
		exportDir  = flag.String("out", cfg.ExportDir, "directory for exported PDFs (QUOTE_EXPORT_DIR)")
		timeout    = flag.Duration("timeout", cfg.RequestTimeout, "per-request timeout")
		locale     = flag.String("locale", cfg.Locale, "message locale (en, pt)")
		skipHealth = flag.Bool("skip-health", false, "do not check the API before prompting")
		logLevel   = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	logger.Init(logger.Options{Level: *logLevel, Pretty: true, Service: "quotectl"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *backendURL, *exportDir, *timeout, *locale, *skipHealth); err != nil {
		if errors.Is(err, terminal.ErrAborted) || errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, "quotectl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, backendURL, exportDir string, timeout time.Duration, locale string, skipHealth bool) error {
	api, err := client.New(client.Options{BaseURL: backendURL, Timeout: timeout, Locale: locale})
	if err != nil {
		if errors.Is(err, client.ErrBackendURLRequired) {
			return fmt.Errorf("%w: set QUOTE_BACKEND_URL or pass -url", err)
		}
		return err
	}

	if !skipHealth {
		health, err := api.Health(ctx)
		if err != nil {
			return fmt.Errorf("quote API at %s is not reachable: %w", backendURL, err)
		}
		log.Info().Str("status", health.Status).Str("database", health.Database).Msg("quote API reachable")
	}

	controller := form.NewController(api,
		form.WithSink(form.NewFileSink(exportDir)),
		form.WithLocale(locale),
	)
	return terminal.NewRunner(controller, terminal.NewSurveyDriver()).Run(ctx)
}
