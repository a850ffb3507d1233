package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/logger"
	"github.com/guttosm/print-quote-service/internal/service"
)

// RequestLogger writes one structured line per request and, with a logging
// service, persists the same record. Probe and scrape endpoints are only logged
// at debug level.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		requestID := GetRequestID(c)

		log := logger.ForRequest(requestID)
		event := log.WithLevel(levelFor(status, path))
		event.Str("method", c.Request.Method).
			Str("path", path).
			Int("status_code", status).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")

		if loggingService == nil || isProbe(path) {
			return
		}

		entry := &model.LogEntry{
			Timestamp:  start.UTC(),
			Level:      levelFor(status, path).String(),
			Message:    "HTTP request",
			RequestID:  requestID,
			Method:     c.Request.Method,
			Path:       path,
			StatusCode: status,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			QuoteID:    c.Param("id"),
		}
		entry.StaffID, entry.StaffEmail = staffIdentity(c)
		persist(loggingService, entry)
	}
}

func levelFor(status int, path string) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	case isProbe(path):
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

func isProbe(path string) bool {
	switch path {
	case "/healthz", "/readyz", "/metrics":
		return true
	}
	return false
}
