// Package client implements the quote form's backend collaborator over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/form"
)

const (
	requestIDHeader   = "X-Request-ID"
	idempotencyHeader = "Idempotency-Key"

	// DefaultTimeout bounds every request; a request that hits it is reported as unreachable.
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 64 << 10
)

// ErrBackendURLRequired is returned by New when no base URL is configured.
var ErrBackendURLRequired = errors.New("quote backend URL is required")

var _ form.QuoteAPI = (*QuoteClient)(nil)

// RemoteError describes a non-success response. It unwraps to form.ErrRemoteRejected.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("quote backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("quote backend returned %d", e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return form.ErrRemoteRejected
}

// Options configures a QuoteClient.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Locale     string
	HTTPClient *http.Client
}

// QuoteClient talks to the quote API.
type QuoteClient struct {
	baseURL *url.URL
	http    *http.Client
	locale  string
}

// New creates a client. A supplied HTTPClient is copied and given the timeout when it has none.
func New(opts Options) (*QuoteClient, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, ErrBackendURLRequired
	}
	base, err := url.Parse(raw)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid quote backend URL %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var httpClient *http.Client
	if opts.HTTPClient != nil {
		clone := *opts.HTTPClient
		if clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	} else {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &QuoteClient{baseURL: base, http: httpClient, locale: opts.Locale}, nil
}

// CreateQuote posts the payload to /api/quotes.
func (c *QuoteClient) CreateQuote(ctx context.Context, payload form.QuotePayload) (*form.QuoteResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode quote payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/quotes", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyHeader, uuid.NewString())

	data, _, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return decodeQuote(data)
}

// GetQuote fetches a stored quote.
func (c *QuoteClient) GetQuote(ctx context.Context, quoteID string) (*form.QuoteResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/quotes/"+url.PathEscape(quoteID), nil)
	if err != nil {
		return nil, err
	}

	data, _, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return decodeQuote(data)
}

// ExportQuote downloads the PDF for a quote.
func (c *QuoteClient) ExportQuote(ctx context.Context, quoteID string) (*form.Document, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/quotes/"+url.PathEscape(quoteID)+"/export", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf")

	data, contentType, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return &form.Document{ContentType: contentType, Data: data}, nil
}

// Health is the backend health report.
type Health struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// Health calls /api/health.
func (c *QuoteClient) Health(ctx context.Context) (*Health, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return nil, err
	}

	data, _, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var h Health
	if err := unmarshalEnvelope(data, &h); err != nil {
		return nil, fmt.Errorf("%w: decode health: %v", form.ErrRemoteRejected, err)
	}
	return &h, nil
}

func (c *QuoteClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	if c.locale != "" {
		req.Header.Set("Accept-Language", c.locale)
	}
	return req, nil
}

// do sends req and returns the body of a 2xx response. Transport failures and
// timeouts wrap form.ErrUnreachable; other statuses return a *RemoteError.
func (c *QuoteClient) do(req *http.Request) ([]byte, string, error) {
	start := time.Now()
	logger := log.With().
		Str("request_id", req.Header.Get(requestIDHeader)).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Logger()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug().Err(err).Dur("duration", time.Since(start)).Msg("quote backend unreachable")
		return nil, "", fmt.Errorf("%w: %w", form.ErrUnreachable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Debug().Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("quote backend response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", remoteError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read body: %w", form.ErrUnreachable, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func remoteError(resp *http.Response) error {
	rerr := &RemoteError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body dto.ErrorResponse
	if json.Unmarshal(data, &body) == nil {
		rerr.Code = body.Error
		rerr.Message = body.Message
	}
	if rerr.Message == "" {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &detail) == nil {
			rerr.Message = detail.Detail
		}
	}
	return rerr
}

func decodeQuote(data []byte) (*form.QuoteResult, error) {
	var result form.QuoteResult
	if err := unmarshalEnvelope(data, &result); err != nil {
		return nil, fmt.Errorf("%w: decode quote: %v", form.ErrRemoteRejected, err)
	}
	if result.QuoteID == "" {
		return nil, fmt.Errorf("%w: response has no quote_id", form.ErrRemoteRejected)
	}
	return &result, nil
}

// unmarshalEnvelope decodes either {"data": v, ...} or a bare v.
func unmarshalEnvelope(data []byte, v any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	payload := data
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		payload = envelope.Data
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return err
	}
	if r, ok := v.(*form.QuoteResult); ok {
		r.Raw = append(json.RawMessage(nil), payload...)
	}
	return nil
}
