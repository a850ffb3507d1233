// Package metrics registers the Prometheus collectors of the print quote service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "print_quote"

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// QuotesCreatedTotal counts stored quotes by product type.
	QuotesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_created_total",
			Help:      "Total number of quotes created",
		},
		[]string{"product_type"},
	)

	// QuoteEstimatedCost observes the total of every created quote.
	QuoteEstimatedCost = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_estimated_cost_dollars",
			Help:      "Estimated cost of created quotes",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
		},
	)

	QuoteStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_status_changes_total",
			Help:      "Total number of quote status changes by new status",
		},
		[]string{"status"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_exports_total",
			Help:      "Total number of quote document exports",
		},
		[]string{"result"},
	)

	ExportRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_export_render_duration_seconds",
			Help:      "Time spent rendering a quote document",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of in-memory cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_size",
			Help:      "Number of entries currently held by an in-memory cache",
		},
		[]string{"cache"},
	)

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware records request count and latency by route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// RecordQuoteCreated records a stored quote.
func RecordQuoteCreated(productType string, estimatedCost float64) {
	QuotesCreatedTotal.WithLabelValues(productType).Inc()
	QuoteEstimatedCost.Observe(estimatedCost)
}

// RecordStatusChange records a status transition.
func RecordStatusChange(status string) {
	QuoteStatusChangesTotal.WithLabelValues(status).Inc()
}

// RecordExport records an export and, when rendered, its render time.
// result is one of "rendered", "cached" or "error".
func RecordExport(result string, renderTime time.Duration) {
	ExportsTotal.WithLabelValues(result).Inc()
	if result == "rendered" {
		ExportRenderDuration.Observe(renderTime.Seconds())
	}
}

// RecordCacheOperation counts one operation on the named cache.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheSize sets the size gauge of the named cache.
func UpdateCacheSize(cache string, size int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
}

// SetCircuitBreakerState publishes a breaker state as its numeric value.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
