package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency is down.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the endpoint payload, e.g. a QuoteResponse for POST /api/quotes
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"invalid_request"`
	Message   string            `json:"message,omitempty" example:"quantity: must be a positive integer"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// QuoteResponse is the summary returned on creation and in listings.
//
// @Description Created quote summary
type QuoteResponse struct {
	QuoteID       string    `json:"quote_id" example:"AB12CD34"`
	ClientName    string    `json:"client_name" example:"Acme"`
	ProductType   string    `json:"product_type" example:"Flyer"`
	EstimatedCost float64   `json:"estimated_cost" example:"114.75"`
	CreatedAt     time.Time `json:"created_at" example:"2025-01-28T10:00:00Z"`
	Status        string    `json:"status" example:"pending"`
} // @name QuoteResponse

// NewQuoteResponse summarises a stored quote.
func NewQuoteResponse(q *model.Quote) QuoteResponse {
	return QuoteResponse{
		QuoteID:       q.QuoteID,
		ClientName:    q.ClientName,
		ProductType:   q.ProductType,
		EstimatedCost: q.EstimatedCost,
		CreatedAt:     q.CreatedAt,
		Status:        string(q.Status),
	}
}

// QuoteListResponse is a page of quote summaries, newest first.
type QuoteListResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
	Limit  int             `json:"limit" example:"50"`
	Offset int             `json:"offset" example:"0"`
} // @name QuoteListResponse

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"Status updated successfully"`
} // @name MessageResponse

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	Database  string    `json:"database" example:"connected"`
} // @name HealthResponse

// HistoryEntry is one audited action on a quote.
type HistoryEntry struct {
	Timestamp  time.Time              `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	Action     string                 `json:"action" example:"quote_status_changed"`
	Message    string                 `json:"message" example:"Quote status updated"`
	Level      string                 `json:"level" example:"info"`
	StaffEmail string                 `json:"staff_email,omitempty" example:"staff@printshop.example"`
	Error      string                 `json:"error,omitempty"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
} // @name HistoryEntry

// QuoteHistoryResponse lists the audit trail of a quote, newest first.
type QuoteHistoryResponse struct {
	QuoteID string         `json:"quote_id" example:"AB12CD34"`
	Entries []HistoryEntry `json:"entries"`
} // @name QuoteHistoryResponse

// NewQuoteHistoryResponse converts stored audit entries.
func NewQuoteHistoryResponse(quoteID string, entries []*model.LogEntry) QuoteHistoryResponse {
	resp := QuoteHistoryResponse{QuoteID: quoteID, Entries: make([]HistoryEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, HistoryEntry{
			Timestamp:  e.Timestamp,
			Action:     e.ActionType,
			Message:    e.Message,
			Level:      e.Level,
			StaffEmail: e.StaffEmail,
			Error:      e.Error,
			Fields:     e.Fields,
		})
	}
	return resp
}
