package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/api/quotes/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, "/api/quotes/:id", "200"))
	for _, id := range []string{"AB12CD34", "ZZ99ZZ99"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes/"+id, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	after := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, "/api/quotes/:id", "200"))
	assert.Equal(t, 2.0, after-before)

	unmatchedBefore := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))-unmatchedBefore)
}

func TestRecordQuoteCreated(t *testing.T) {
	before := testutil.ToFloat64(QuotesCreatedTotal.WithLabelValues("Booklet"))
	RecordQuoteCreated("Booklet", 1234.5)
	assert.Equal(t, 1.0, testutil.ToFloat64(QuotesCreatedTotal.WithLabelValues("Booklet"))-before)
}

func TestRecordExport(t *testing.T) {
	cached := testutil.ToFloat64(ExportsTotal.WithLabelValues("cached"))
	rendered := testutil.ToFloat64(ExportsTotal.WithLabelValues("rendered"))

	RecordExport("cached", 0)
	RecordExport("rendered", 300*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(ExportsTotal.WithLabelValues("cached"))-cached)
	assert.Equal(t, 1.0, testutil.ToFloat64(ExportsTotal.WithLabelValues("rendered"))-rendered)
}

func TestGauges(t *testing.T) {
	UpdateCacheSize("documents", 7)
	assert.Equal(t, 7.0, testutil.ToFloat64(CacheSize.WithLabelValues("documents")))

	SetCircuitBreakerState("mongodb", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("mongodb")))

	RecordStatusChange("approved")
}

func TestRecordCacheOperation_LabelsByCache(t *testing.T) {
	docs := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("documents", "get", "hit"))
	idem := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("idempotency", "get", "hit"))

	RecordCacheOperation("idempotency", "get", "hit")

	assert.Equal(t, docs, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("documents", "get", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("idempotency", "get", "hit"))-idem)
}
