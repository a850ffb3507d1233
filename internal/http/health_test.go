package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/domain/dto"
)

func healthy(context.Context) error { return nil }
func unreachable(context.Context) error { return errors.New("connection refused") }

func serveHealth(h *HealthHandler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.Register(router)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler()
	h.RegisterChecker(DatabaseCheck, HealthCheckFunc(unreachable))

	w := serveHealth(h, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	openBreaker := func() *circuitbreaker.CircuitBreaker {
		cb := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, Timeout: time.Hour, Name: "mongodb"})
		_ = cb.Execute(context.Background(), func() error { return errors.New("down") })
		return cb
	}

	tests := []struct {
		name           string
		setupHandler   func() *HealthHandler
		expectedStatus int
		expectedChecks map[string]interface{}
	}{
		{
			name:           "no checkers",
			setupHandler:   NewHealthHandler,
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]interface{}{"service": "ok"},
		},
		{
			name: "healthy database and closed circuit",
			setupHandler: func() *HealthHandler {
				h := NewHealthHandler()
				h.RegisterChecker(DatabaseCheck, HealthCheckFunc(healthy))
				h.RegisterCircuitBreaker("mongodb", circuitbreaker.New(circuitbreaker.DefaultConfig()))
				return h
			},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]interface{}{"database": "ok", "mongodb_circuit": "closed"},
		},
		{
			name: "database down",
			setupHandler: func() *HealthHandler {
				h := NewHealthHandler()
				h.RegisterChecker(DatabaseCheck, HealthCheckFunc(unreachable))
				return h
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]interface{}{"database": "connection refused"},
		},
		{
			name: "open circuit",
			setupHandler: func() *HealthHandler {
				h := NewHealthHandler()
				h.RegisterCircuitBreaker("mongodb", openBreaker())
				return h
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]interface{}{"mongodb_circuit": "open"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveHealth(tt.setupHandler(), "/readyz")

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body struct {
				Status string                 `json:"status"`
				Checks map[string]interface{} `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedChecks, body.Checks)
		})
	}
}

func TestHealthHandler_APIHealth(t *testing.T) {
	at := time.Date(2025, 1, 28, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		checker    HealthChecker
		statusCode int
		database   string
	}{
		{"connected", HealthCheckFunc(healthy), http.StatusOK, "connected"},
		{"no database configured", nil, http.StatusOK, "disabled"},
		{"database down", HealthCheckFunc(unreachable), http.StatusServiceUnavailable, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler()
			h.now = func() time.Time { return at }
			if tt.checker != nil {
				h.RegisterChecker(DatabaseCheck, tt.checker)
			}

			w := serveHealth(h, "/api/health")

			require.Equal(t, tt.statusCode, w.Code)
			if tt.database == "" {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, dto.ErrCodeUnavailable, resp.Error)
				return
			}
			var resp dto.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.HealthResponse{Status: "healthy", Timestamp: at, Database: tt.database}, resp)
		})
	}
}

func TestHealthHandler_Checks(t *testing.T) {
	h := NewHealthHandler()
	h.RegisterChecker("logs", HealthCheckFunc(healthy))
	h.RegisterChecker(DatabaseCheck, HealthCheckFunc(healthy))

	assert.Equal(t, []string{"database", "logs"}, h.Checks())
}
