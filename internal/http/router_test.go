package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/mocks"
	"github.com/guttosm/print-quote-service/internal/service"
)

func TestRouter_Endpoints(t *testing.T) {
	quotes := new(mocks.MockQuoteService)
	quotes.On("List", mock.Anything, mock.Anything).Return([]*model.Quote{}, nil)
	router := setupQuoteRouter(quotes, nil)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"healthz endpoint", http.MethodGet, "/healthz", http.StatusOK},
		{"readyz endpoint", http.MethodGet, "/readyz", http.StatusOK},
		{"api health endpoint", http.MethodGet, "/api/health", http.StatusOK},
		{"metrics endpoint", http.MethodGet, "/metrics", http.StatusOK},
		{"swagger endpoint", http.MethodGet, "/swagger/index.html", http.StatusOK},
		{"list quotes", http.MethodGet, "/api/quotes", http.StatusOK},
		{"create without body", http.MethodPost, "/api/quotes", http.StatusBadRequest},
		{"status without body", http.MethodPut, "/api/quotes/AB12CD34/status", http.StatusBadRequest},
		{"login not mounted without auth service", http.MethodPost, "/api/auth/login", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.path, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_SwaggerBasicAuth(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.SwaggerUser, cfg.SwaggerPass = "docs", "secret"
	router := NewRouter(nil, NewHealthHandler(), cfg)

	w := do(router, http.MethodGet, "/swagger/index.html", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.SetBasicAuth("docs", "secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_StaffRoutesRequireToken(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("ValidateToken", "good-token").Return(&dto.Claims{
		StaffID: primitive.NewObjectID(),
		Email:   "jo@printshop.example",
	}, nil)
	auth.On("ValidateToken", "forged").Return(nil, service.ErrInvalidToken)

	quotes := new(mocks.MockQuoteService)
	quotes.On("Delete", mock.Anything, "AB12CD34").Return(nil)
	quotes.On("Get", mock.Anything, "AB12CD34").Return(storedQuote("AB12CD34"), nil)

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	cfg.EnableAuth = true
	cfg.AuthService = auth
	router := NewRouter(NewQuoteHandler(quotes, nil), NewHealthHandler(), cfg)

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{"public read needs no token", http.MethodGet, "/api/quotes/AB12CD34", "", http.StatusOK},
		{"delete without token", http.MethodDelete, "/api/quotes/AB12CD34", "", http.StatusUnauthorized},
		{"delete with forged token", http.MethodDelete, "/api/quotes/AB12CD34", "forged", http.StatusUnauthorized},
		{"delete with staff token", http.MethodDelete, "/api/quotes/AB12CD34", "good-token", http.StatusOK},
		{"history without token", http.MethodGet, "/api/quotes/AB12CD34/history", "", http.StatusUnauthorized},
		{"status without token", http.MethodPut, "/api/quotes/AB12CD34/status?status=approved", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
	quotes.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_StaffRoutesWithAPIKeys(t *testing.T) {
	quotes := new(mocks.MockQuoteService)
	quotes.On("Delete", mock.Anything, "AB12CD34").Return(nil)

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	cfg.EnableAuth = true
	cfg.APIKeys = map[string]bool{"shop-key": true}
	router := NewRouter(NewQuoteHandler(quotes, nil), NewHealthHandler(), cfg)

	w := do(router, http.MethodDelete, "/api/quotes/AB12CD34", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/quotes/AB12CD34", nil)
	req.Header.Set("X-API-Key", "shop-key")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 2
	cfg.RateWindow = time.Minute
	router := NewRouter(nil, NewHealthHandler(), cfg)

	for i := 0; i < 2; i++ {
		w := do(router, http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, strconv.Itoa(1-i), w.Header().Get("X-RateLimit-Remaining"))
	}

	w := do(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := NewRouter(nil, NewHealthHandler(), DefaultRouterConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/quotes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	router := NewRouter(nil, NewHealthHandler(), DefaultRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}
