// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls Init.
type Options struct {
	// Level is a zerolog level name; unknown names fall back to info.
	Level string
	// Pretty switches to human-readable console output.
	Pretty bool
	// Service is added to every line when set.
	Service string
	// Out defaults to stderr.
	Out io.Writer
}

// Init replaces the global logger.
func Init(opts Options) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	log.Logger = ctx.Logger()
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return log.Logger
}

// ForRequest returns the global logger tagged with a request id.
func ForRequest(requestID string) zerolog.Logger {
	if requestID == "" {
		return log.Logger
	}
	return log.Logger.With().Str("request_id", requestID).Logger()
}

// WithContext returns the global logger with fields attached.
func WithContext(fields map[string]interface{}) zerolog.Logger {
	return log.Logger.With().Fields(fields).Logger()
}
