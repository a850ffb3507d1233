package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit action types recorded against quotes and staff sessions.
const (
	ActionQuoteCreated  = "quote_created"
	ActionStatusChanged = "quote_status_changed"
	ActionQuoteDeleted  = "quote_deleted"
	ActionQuoteExported = "quote_exported"
	ActionStaffLogin    = "staff_login"
)

// LogEntry is a request log or audit record. Context-specific data goes in Fields.
type LogEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	QuoteID    string                 `bson:"quote_id,omitempty" json:"quote_id,omitempty"`
	StaffID    string                 `bson:"staff_id,omitempty" json:"staff_id,omitempty"`
	StaffEmail string                 `bson:"staff_email,omitempty" json:"staff_email,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField sets one entry in Fields, allocating the map if needed.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// LogQueryOptions filters log queries.
type LogQueryOptions struct {
	RequestID  string
	QuoteID    string
	ActionType string
	Level      string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
