// Package app provides logger initialization.
package app

import (
	"os"

	"github.com/guttosm/print-quote-service/internal/logger"
)

// ServiceName tags every log line written by the server.
const ServiceName = "print-quote-service"

// InitializeLogger initializes the JSON logger from LOG_LEVEL and LOG_PRETTY.
func InitializeLogger() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(logger.Options{
		Level:   logLevel,
		Pretty:  os.Getenv("LOG_PRETTY") == "true",
		Service: ServiceName,
	})
}
