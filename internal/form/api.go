package form

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrRemoteRejected is returned by a QuoteAPI when the backend answered with a non-success status.
	ErrRemoteRejected = errors.New("quote backend rejected the request")
	// ErrUnreachable is returned by a QuoteAPI when the backend could not be reached or timed out.
	ErrUnreachable = errors.New("quote backend unreachable")

	ErrSubmitInFlight = errors.New("submit already in flight")
	ErrNoQuote        = errors.New("no quote to export")
	ErrInvalidDraft   = errors.New("draft cannot be converted to a payload")
	ErrUnknownField   = errors.New("unknown form field")
)

// QuoteAPI is the remote collaborator the controller talks to.
type QuoteAPI interface {
	// CreateQuote submits the payload and returns the stored quote.
	CreateQuote(ctx context.Context, payload QuotePayload) (*QuoteResult, error)
	// ExportQuote fetches the rendered document for a quote id.
	ExportQuote(ctx context.Context, quoteID string) (*Document, error)
}

// QuoteResult is what the backend returns after a successful creation.
// Only QuoteID is required; the raw body is kept for hosts that want the rest.
type QuoteResult struct {
	QuoteID       string          `json:"quote_id"`
	ClientName    string          `json:"client_name,omitempty"`
	ProductType   string          `json:"product_type,omitempty"`
	EstimatedCost float64         `json:"estimated_cost,omitempty"`
	Status        string          `json:"status,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
	Raw           json.RawMessage `json:"-"`
}

// Document is an exported quote.
type Document struct {
	ContentType string
	Data        []byte
}
