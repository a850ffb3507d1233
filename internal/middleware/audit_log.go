package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/service"
)

// LoggingServiceKey is where the router stores the logging service for handlers.
const LoggingServiceKey ContextKey = "logging_service"

// Audit describes one audited action.
type Audit struct {
	Action  string
	QuoteID string
	Message string
	Fields  map[string]interface{}
}

// AuditLog records a successful action against the request's staff member and quote.
func AuditLog(c *gin.Context, a Audit) {
	record(c, auditEntry(c, "info", a))
}

// AuditLogError records a failed action.
func AuditLogError(c *gin.Context, a Audit, err error) {
	entry := auditEntry(c, "error", a)
	if err != nil {
		entry.Error = err.Error()
	}
	record(c, entry)
}

// LoggingServiceFrom returns the logging service set on the context, or nil.
func LoggingServiceFrom(c *gin.Context) service.LoggingService {
	if v, ok := c.Get(string(LoggingServiceKey)); ok {
		if ls, ok := v.(service.LoggingService); ok {
			return ls
		}
	}
	return nil
}

func auditEntry(c *gin.Context, level string, a Audit) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    a.Message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		QuoteID:    a.QuoteID,
		ActionType: a.Action,
		Fields:     a.Fields,
	}
	entry.StaffID, entry.StaffEmail = staffIdentity(c)
	return entry
}

func record(c *gin.Context, entry *model.LogEntry) {
	ls := LoggingServiceFrom(c)
	if ls == nil && GetAsyncLogger() == nil {
		return
	}
	persist(ls, entry)
}
