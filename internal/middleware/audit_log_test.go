package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

func auditRouter(svc *recordingLoggingService, staffID primitive.ObjectID, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), func(c *gin.Context) {
		c.Set(string(LoggingServiceKey), svc)
		if !staffID.IsZero() {
			c.Set(string(StaffIDKey), staffID)
			c.Set(string(StaffEmailKey), "jo@printshop.example")
		}
		c.Next()
	})
	router.PUT("/api/quotes/:id/status", handler)
	return router
}

func TestAuditLog(t *testing.T) {
	svc := &recordingLoggingService{}
	staffID := primitive.NewObjectID()
	router := auditRouter(svc, staffID, func(c *gin.Context) {
		AuditLog(c, Audit{
			Action:  model.ActionStatusChanged,
			QuoteID: c.Param("id"),
			Message: "Quote status changed",
			Fields:  map[string]interface{}{"status": "approved"},
		})
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPut, "/api/quotes/AB12CD34/status", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	serve(router, req)

	require.Eventually(t, func() bool { return svc.count() == 1 }, time.Second, 5*time.Millisecond)
	entry := svc.snapshot()[0]
	assert.Equal(t, "info", entry.Level)
	assert.Equal(t, model.ActionStatusChanged, entry.ActionType)
	assert.Equal(t, "AB12CD34", entry.QuoteID)
	assert.Equal(t, "req-42", entry.RequestID)
	assert.Equal(t, staffID.Hex(), entry.StaffID)
	assert.Equal(t, "jo@printshop.example", entry.StaffEmail)
	assert.Equal(t, "approved", entry.Fields["status"])
}

func TestAuditLogError(t *testing.T) {
	svc := &recordingLoggingService{}
	router := auditRouter(svc, primitive.NilObjectID, func(c *gin.Context) {
		AuditLogError(c, Audit{Action: model.ActionStaffLogin, Message: "Failed staff login"}, errors.New("bad password"))
		c.Status(http.StatusUnauthorized)
	})

	serve(router, httptest.NewRequest(http.MethodPut, "/api/quotes/X/status", nil))

	require.Eventually(t, func() bool { return svc.count() == 1 }, time.Second, 5*time.Millisecond)
	entry := svc.snapshot()[0]
	assert.Equal(t, "error", entry.Level)
	assert.Equal(t, "bad password", entry.Error)
	assert.Empty(t, entry.StaffID)
}

func TestAuditLog_NoService(t *testing.T) {
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		AuditLog(c, Audit{Action: "noop"})
		c.Status(http.StatusNoContent)
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Nil(t, LoggingServiceFrom(&gin.Context{}))
}
