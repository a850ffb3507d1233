// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model and carry the
// binding rules gin validates before a handler runs.
package dto

import (
	"fmt"
	"slices"
	"strings"

	"github.com/guttosm/print-quote-service/internal/catalog"
	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// CreateQuoteRequest is the body of POST /api/quotes.
//
// @Description Print job specification to quote
type CreateQuoteRequest struct {
	ClientName          string   `json:"client_name" binding:"required" example:"Acme"`
	ProductType         string   `json:"product_type" binding:"required" example:"Flyer"`
	FinishedSize        string   `json:"finished_size" binding:"required" example:"A4 (210 × 297mm)"`
	PageCount           int      `json:"page_count" binding:"required,gt=0" example:"1" minimum:"1"`
	Sidedness           string   `json:"sidedness" binding:"required,oneof=single double" example:"single"`
	CoverStock          string   `json:"cover_stock" example:"300gsm Gloss Art"`
	TextStock           string   `json:"text_stock" example:"115gsm Gloss Art"`
	FinishingOptions    []string `json:"finishing_options" example:"Spot UV,Matt Laminate"`
	Quantity            int      `json:"quantity" binding:"required,gt=0" example:"100" minimum:"1"`
	DeliveryLocation    string   `json:"delivery_location" binding:"required" example:"Metro Melbourne"`
	SpecialRequirements string   `json:"special_requirements" example:"Deliver before 9am"`
	InkType             string   `json:"ink_type" binding:"required" example:"CMYK"`
	PMSColors           bool     `json:"pms_colors" example:"false"`
	PMSColorCount       int      `json:"pms_color_count" example:"1"`
} // @name CreateQuoteRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks what binding tags cannot express: blank strings, the PMS colour
// range when PMS colours are requested, and that finishing options are known.
func (r *CreateQuoteRequest) Validate() error {
	if strings.TrimSpace(r.ClientName) == "" {
		return &ValidationError{Field: "client_name", Message: "must not be blank"}
	}
	if r.PageCount <= 0 {
		return &ValidationError{Field: "page_count", Message: "must be a positive integer"}
	}
	if r.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Message: "must be a positive integer"}
	}
	if r.PMSColors && (r.PMSColorCount < 1 || r.PMSColorCount > catalog.MaxPMSColors) {
		return &ValidationError{
			Field:   "pms_color_count",
			Message: fmt.Sprintf("must be between 1 and %d", catalog.MaxPMSColors),
		}
	}
	seen := make(map[string]bool, len(r.FinishingOptions))
	for _, opt := range r.FinishingOptions {
		if !slices.Contains(catalog.FinishingOptions, opt) {
			return &ValidationError{Field: "finishing_options", Message: fmt.Sprintf("unknown option %q", opt)}
		}
		if seen[opt] {
			return &ValidationError{Field: "finishing_options", Message: fmt.Sprintf("duplicate option %q", opt)}
		}
		seen[opt] = true
	}
	return nil
}

// ToSpec converts the request into the stored print specification.
func (r *CreateQuoteRequest) ToSpec() model.PrintSpec {
	finishing := r.FinishingOptions
	if finishing == nil {
		finishing = []string{}
	}
	pmsCount := r.PMSColorCount
	if pmsCount == 0 {
		pmsCount = 1
	}
	return model.PrintSpec{
		ClientName:          strings.TrimSpace(r.ClientName),
		ProductType:         r.ProductType,
		FinishedSize:        r.FinishedSize,
		PageCount:           r.PageCount,
		Sidedness:           r.Sidedness,
		CoverStock:          r.CoverStock,
		TextStock:           r.TextStock,
		FinishingOptions:    finishing,
		Quantity:            r.Quantity,
		DeliveryLocation:    r.DeliveryLocation,
		SpecialRequirements: r.SpecialRequirements,
		InkType:             r.InkType,
		PMSColors:           r.PMSColors,
		PMSColorCount:       pmsCount,
	}
}

// UpdateStatusRequest is the body of PUT /api/quotes/{id}/status.
// The status may also be given as the ?status= query parameter.
type UpdateStatusRequest struct {
	Status string `json:"status" example:"approved"`
} // @name UpdateStatusRequest

// Validate checks the status is known.
func (r *UpdateStatusRequest) Validate() error {
	if !catalog.ValidStatus(r.Status) {
		return &ValidationError{
			Field:   "status",
			Message: "must be one of " + strings.Join(catalog.QuoteStatuses, ", "),
		}
	}
	return nil
}

// ListQuotesQuery holds the paging parameters of GET /api/quotes.
type ListQuotesQuery struct {
	Limit  int `form:"limit,default=50" binding:"gte=1,lte=200"`
	Offset int `form:"offset,default=0" binding:"gte=0"`
}

// QuoteHistoryQuery pages the audit trail of one quote.
type QuoteHistoryQuery struct {
	Limit int `form:"limit,default=100" binding:"gte=1,lte=1000"`
}
