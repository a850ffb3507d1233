package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/service"
)

// QuoteHandler serves the /api/quotes routes.
type QuoteHandler struct {
	quotes  service.QuoteService
	history service.LoggingService
}

// NewQuoteHandler creates a quote handler. history may be nil when no log store is configured.
func NewQuoteHandler(quotes service.QuoteService, history service.LoggingService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, history: history}
}

// Create handles POST /api/quotes.
//
// @Summary      Create a quote
// @Description  Validates the print job, estimates its cost and stores it as a pending quote. Supports idempotency via the Idempotency-Key header.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CreateQuoteRequest true "Print job"
// @Success      201 {object} dto.SuccessResponse{data=dto.QuoteResponse} "Quote created"
// @Failure      400 {object} dto.ErrorResponse "Invalid print job"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Quote store unavailable"
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CreateQuoteRequest](c)
	if err != nil {
		builder.ValidationFailed(err)
		return
	}

	quote, err := h.quotes.Create(c.Request.Context(), req.ToSpec())
	if err != nil {
		h.fail(c, err)
		return
	}

	middleware.AuditLog(c, middleware.Audit{
		Action:  model.ActionQuoteCreated,
		QuoteID: quote.QuoteID,
		Message: "Quote created",
		Fields: map[string]interface{}{
			"product_type":   quote.ProductType,
			"quantity":       quote.Quantity,
			"estimated_cost": quote.EstimatedCost,
		},
	})

	c.Header("Location", "/api/quotes/"+quote.QuoteID)
	builder.SuccessCreated(dto.NewQuoteResponse(quote))
}

// List handles GET /api/quotes.
//
// @Summary      List quotes
// @Description  Returns quote summaries, newest first.
// @Tags         Quotes
// @Produce      json
// @Param        limit  query int false "Page size (1-200)" default(50)
// @Param        offset query int false "Number of quotes to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteListResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Failure      503 {object} dto.ErrorResponse "Quote store unavailable"
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var query dto.ListQuotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	quotes, err := h.quotes.List(c.Request.Context(), model.QuoteListOptions{Limit: query.Limit, Offset: query.Offset})
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := dto.QuoteListResponse{
		Quotes: make([]dto.QuoteResponse, 0, len(quotes)),
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	for _, q := range quotes {
		resp.Quotes = append(resp.Quotes, dto.NewQuoteResponse(q))
	}
	builder.SuccessOK(resp)
}

// Get handles GET /api/quotes/:id.
//
// @Summary      Get a quote
// @Description  Returns the full stored quote including its print job and cost breakdown.
// @Tags         Quotes
// @Produce      json
// @Param        id path string true "Quote id"
// @Success      200 {object} dto.SuccessResponse{data=model.Quote}
// @Failure      404 {object} dto.ErrorResponse "Quote not found"
// @Failure      503 {object} dto.ErrorResponse "Quote store unavailable"
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	quote, err := h.quotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(quote)
}

// UpdateStatus handles PUT /api/quotes/:id/status. The status is read from the
// ?status= query parameter when present, otherwise from the JSON body.
//
// @Summary      Update quote status
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        id      path  string                  true  "Quote id"
// @Param        status  query string                  false "New status"
// @Param        request body  dto.UpdateStatusRequest false "New status"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=dto.MessageResponse}
// @Failure      400 {object} dto.ErrorResponse "Unknown status"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid staff token"
// @Failure      404 {object} dto.ErrorResponse "Quote not found"
// @Failure      503 {object} dto.ErrorResponse "Quote store unavailable"
// @Security     BearerAuth
// @Router       /api/quotes/{id}/status [put]
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	builder := NewResponseBuilder(c)
	quoteID := c.Param("id")

	req := dto.UpdateStatusRequest{Status: c.Query("status")}
	if req.Status == "" {
		if err := c.ShouldBindJSON(&req); err != nil {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
			return
		}
	}
	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidStatus, err)
		return
	}

	audit := middleware.Audit{
		Action:  model.ActionStatusChanged,
		QuoteID: quoteID,
		Message: "Quote status updated",
		Fields:  map[string]interface{}{"status": req.Status},
	}
	if _, err := h.quotes.UpdateStatus(c.Request.Context(), quoteID, model.QuoteStatus(req.Status)); err != nil {
		if !errors.Is(err, service.ErrQuoteNotFound) {
			middleware.AuditLogError(c, audit, err)
		}
		h.fail(c, err)
		return
	}

	middleware.AuditLog(c, audit)
	builder.SuccessOK(dto.MessageResponse{
		Message: i18n.GetTranslator().Translate(i18n.SuccessKeyStatusUpdated, i18n.GetLocale(c)),
	})
}

// Delete handles DELETE /api/quotes/:id.
//
// @Summary      Delete a quote
// @Tags         Quotes
// @Produce      json
// @Param        id path string true "Quote id"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=dto.MessageResponse}
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid staff token"
// @Failure      404 {object} dto.ErrorResponse "Quote not found"
// @Failure      503 {object} dto.ErrorResponse "Quote store unavailable"
// @Security     BearerAuth
// @Router       /api/quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	quoteID := c.Param("id")
	if err := h.quotes.Delete(c.Request.Context(), quoteID); err != nil {
		h.fail(c, err)
		return
	}

	middleware.AuditLog(c, middleware.Audit{
		Action:  model.ActionQuoteDeleted,
		QuoteID: quoteID,
		Message: "Quote deleted",
	})
	NewResponseBuilder(c).SuccessOK(dto.MessageResponse{
		Message: i18n.GetTranslator().Translate(i18n.SuccessKeyQuoteDeleted, i18n.GetLocale(c)),
	})
}

// Export handles GET /api/quotes/:id/export.
//
// @Summary      Export a quote as PDF
// @Description  Renders the quote document. The file name is quote_<id>.pdf.
// @Tags         Quotes
// @Produce      application/pdf
// @Param        id path string true "Quote id"
// @Success      200 {file} file "PDF document"
// @Failure      404 {object} dto.ErrorResponse "Quote not found"
// @Failure      500 {object} dto.ErrorResponse "Document could not be rendered"
// @Failure      503 {object} dto.ErrorResponse "Quote store unavailable"
// @Router       /api/quotes/{id}/export [get]
func (h *QuoteHandler) Export(c *gin.Context) {
	quoteID := c.Param("id")
	audit := middleware.Audit{
		Action:  model.ActionQuoteExported,
		QuoteID: quoteID,
		Message: "Quote exported",
	}

	doc, err := h.quotes.Export(c.Request.Context(), quoteID)
	if err != nil {
		if errors.Is(err, service.ErrRenderFailed) {
			middleware.AuditLogError(c, audit, err)
		}
		h.fail(c, err)
		return
	}

	audit.Fields = map[string]interface{}{"bytes": len(doc.Data)}
	middleware.AuditLog(c, audit)
	NewResponseBuilder(c).Document(doc)
}

// History handles GET /api/quotes/:id/history.
//
// @Summary      Quote audit trail
// @Description  Lists the recorded actions on a quote, newest first. Deleted quotes keep their history.
// @Tags         Quotes
// @Produce      json
// @Param        id    path  string true  "Quote id"
// @Param        limit query int    false "Maximum entries (1-1000)" default(100)
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteHistoryResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid limit"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid staff token"
// @Failure      503 {object} dto.ErrorResponse "Log store unavailable"
// @Security     BearerAuth
// @Router       /api/quotes/{id}/history [get]
func (h *QuoteHandler) History(c *gin.Context) {
	builder := NewResponseBuilder(c)
	if h.history == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, nil)
		return
	}

	var query dto.QuoteHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	quoteID := c.Param("id")
	entries, err := h.history.QuoteHistory(c.Request.Context(), quoteID, query.Limit)
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
		return
	}
	builder.SuccessOK(dto.NewQuoteHistoryResponse(quoteID, entries))
}

// fail maps service errors onto HTTP statuses.
func (h *QuoteHandler) fail(c *gin.Context, err error) {
	builder := NewResponseBuilder(c)
	switch {
	case errors.Is(err, service.ErrQuoteNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyQuoteNotFound, err)
	case errors.Is(err, service.ErrInvalidStatus):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidStatus, err)
	case errors.Is(err, service.ErrStoreUnavailable):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
	case errors.Is(err, service.ErrRenderFailed):
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyExportFailed, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}
