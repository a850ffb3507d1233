package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/i18n"
)

// DatabaseCheck is the checker name /api/health reports on.
const DatabaseCheck = "database"

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) Check(ctx context.Context) error { return f(ctx) }

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
	now             func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
		now:             time.Now,
	}
}

// RegisterChecker adds a dependency probe used by /readyz, and by /api/health when
// name is DatabaseCheck.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.circuitBreakers[name] = cb
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
	router.GET("/api/health", h.APIHealth)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Returns OK when every dependency answers and no circuit breaker is open or probing.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	status := http.StatusOK
	checks := make(map[string]interface{})

	for name, checker := range h.checkers {
		if err := checker.Check(c.Request.Context()); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks[name] = "ok"
		}
	}

	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			status = http.StatusServiceUnavailable
		}
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	c.JSON(status, gin.H{
		"status": map[bool]string{true: "ok", false: "degraded"}[status == http.StatusOK],
		"checks": checks,
	})
}

// APIHealth handles GET /api/health, the probe the form client uses.
// @Summary     Service health
// @Description Reports whether the quote store is connected. Answers 503 when it is not.
// @Tags        Health
// @Produce     json
// @Success     200 {object} dto.HealthResponse
// @Failure     503 {object} dto.ErrorResponse "Quote store unavailable"
// @Router      /api/health [get]
func (h *HealthHandler) APIHealth(c *gin.Context) {
	checker, ok := h.checkers[DatabaseCheck]
	if !ok {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "healthy", Timestamp: h.now().UTC(), Database: "disabled"})
		return
	}

	if err := checker.Check(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		NewResponseBuilder(c).Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, nil)
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "healthy", Timestamp: h.now().UTC(), Database: "connected"})
}

// Checks lists the registered checker names in order.
func (h *HealthHandler) Checks() []string {
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
