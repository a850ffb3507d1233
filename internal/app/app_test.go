//go:build !integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/mocks"
)

func TestInitializeApp_DatabaseDisabled(t *testing.T) {
	cfg := config.Config{
		Server: config.ServerConfig{Port: "8001", RateLimit: 100, RateWindow: time.Minute},
		Cache:  config.CacheConfig{Size: 16, TTL: time.Minute},
		Export: config.ExportConfig{Currency: "AUD", Locale: "en-AU"},
	}

	application, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, application.Router)
	t.Cleanup(func() { _ = application.Close(context.Background()) })

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "liveness", path: "/healthz", status: http.StatusOK},
		{name: "readiness", path: "/readyz", status: http.StatusOK},
		{name: "api health", path: "/api/health", status: http.StatusOK},
		{name: "metrics", path: "/metrics", status: http.StatusOK},
		{name: "quote routes not mounted", path: "/api/quotes", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}

	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "disabled", health["database"])
}

func TestInitializeApp_DatabaseUnreachable(t *testing.T) {
	cfg := config.Config{
		Database: config.DatabaseConfig{Enabled: true, URI: "not-a-mongo-uri", DatabaseName: "print_quotes"},
	}

	application, err := InitializeApp(cfg)

	assert.Error(t, err)
	assert.Nil(t, application)
}

func TestApplication_Close(t *testing.T) {
	db := &DatabaseComponents{LoggingService: new(mocks.MockLoggingService)}
	application := assemble(config.Config{}, db, nil)

	require.NotNil(t, middleware.GetAsyncLogger())

	assert.NoError(t, application.Close(context.Background()))
	assert.Nil(t, middleware.GetAsyncLogger())
}
