package http

import (
	"errors"
	"mime"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/middleware"
)

// envelopePool recycles response envelopes; reset clears a value before it goes back.
type envelopePool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

func newEnvelopePool[T any](reset func(*T)) *envelopePool[T] {
	return &envelopePool[T]{
		pool:  sync.Pool{New: func() interface{} { return new(T) }},
		reset: reset,
	}
}

func (p *envelopePool[T]) get() *T {
	if v, ok := p.pool.Get().(*T); ok {
		return v
	}
	return new(T)
}

func (p *envelopePool[T]) put(v *T) {
	p.reset(v)
	p.pool.Put(v)
}

var (
	successEnvelopes = newEnvelopePool(func(r *dto.SuccessResponse) { *r = dto.SuccessResponse{} })
	errorEnvelopes   = newEnvelopePool(func(r *dto.ErrorResponse) { *r = dto.ErrorResponse{} })
)

// ResponseBuilder writes the {data, request_id, timestamp} envelope and error bodies.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in the envelope. Gin serialises synchronously, so the
// pooled envelope can be returned right after.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := successEnvelopes.get()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	b.c.JSON(statusCode, resp)
	successEnvelopes.put(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Document streams a rendered quote as a download.
func (b *ResponseBuilder) Document(doc *model.Document) {
	b.c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	b.c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

// Error sends an error response whose message is the translation of messageKey.
// err, when set, is attached to the context for the ErrorHandler middleware.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	b.ErrorWithMessage(statusCode, message, err)
}

// ErrorWithMessage sends an error response with a literal message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	resp := errorEnvelopes.get()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	errorEnvelopes.put(resp)
}

// ValidationFailed answers 400 naming the offending field.
func (b *ResponseBuilder) ValidationFailed(err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		b.ErrorWithMessage(http.StatusBadRequest, verr.Error(), err)
		return
	}
	b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

// BuildRequest binds the JSON body into a new T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validator is implemented by request DTOs that check themselves.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the body and runs Validate when T implements Validator.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if validator, ok := any(req).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}
