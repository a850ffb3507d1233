package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/internal/catalog"
	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/form"
	"github.com/guttosm/print-quote-service/internal/metrics"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/service/cache"
)

// maxIDAttempts bounds retries when a generated quote id collides.
const maxIDAttempts = 3

// CachedDocument is a rendered PDF together with the quote version it was rendered from.
type CachedDocument struct {
	Version int64
	Data    []byte
}

// QuoteService manages stored quotes and their exported documents.
type QuoteService interface {
	Create(ctx context.Context, spec model.PrintSpec) (*model.Quote, error)
	List(ctx context.Context, opts model.QuoteListOptions) ([]*model.Quote, error)
	Get(ctx context.Context, quoteID string) (*model.Quote, error)
	UpdateStatus(ctx context.Context, quoteID string, status model.QuoteStatus) (*model.Quote, error)
	Delete(ctx context.Context, quoteID string) error
	Export(ctx context.Context, quoteID string) (*model.Document, error)
}

// QuoteServiceImpl implements QuoteService.
type QuoteServiceImpl struct {
	repo      repository.QuoteRepositoryInterface
	estimator Estimator
	renderer  DocumentRenderer
	documents cache.Cache[CachedDocument]
	newID     func() string
	now       func() time.Time
}

// QuoteServiceOption customises a QuoteServiceImpl.
type QuoteServiceOption func(*QuoteServiceImpl)

// WithIDGenerator replaces the quote id generator.
func WithIDGenerator(fn func() string) QuoteServiceOption {
	return func(s *QuoteServiceImpl) { s.newID = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) QuoteServiceOption {
	return func(s *QuoteServiceImpl) { s.now = fn }
}

// NewQuoteService creates a quote service. documents may be nil to disable caching.
func NewQuoteService(
	repo repository.QuoteRepositoryInterface,
	estimator Estimator,
	renderer DocumentRenderer,
	documents cache.Cache[CachedDocument],
	opts ...QuoteServiceOption,
) *QuoteServiceImpl {
	s := &QuoteServiceImpl{
		repo:      repo,
		estimator: estimator,
		renderer:  renderer,
		documents: documents,
		newID:     NewQuoteID,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewQuoteID returns the first 8 hex digits of a random UUID, upper-cased.
func NewQuoteID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Create prices spec and stores it as a pending quote.
func (s *QuoteServiceImpl) Create(ctx context.Context, spec model.PrintSpec) (*model.Quote, error) {
	breakdown := s.estimator.Estimate(spec)

	quote := &model.Quote{
		PrintSpec:     spec,
		EstimatedCost: breakdown.EstimatedCost,
		Breakdown:     breakdown,
		Status:        model.QuoteStatusPending,
	}

	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		quote.QuoteID = s.newID()
		quote.CreatedAt = s.now().UTC()
		err = s.repo.Create(ctx, quote)
		if !errors.Is(err, repository.ErrDuplicateQuoteID) {
			break
		}
		log.Warn().Str("quote_id", quote.QuoteID).Msg("Generated quote id already taken, retrying")
	}
	if err != nil {
		return nil, storeError("create quote", err)
	}

	metrics.RecordQuoteCreated(spec.ProductType, quote.EstimatedCost)
	log.Info().
		Str("quote_id", quote.QuoteID).
		Str("product_type", spec.ProductType).
		Float64("estimated_cost", quote.EstimatedCost).
		Msg("Quote created")
	return quote, nil
}

func (s *QuoteServiceImpl) List(ctx context.Context, opts model.QuoteListOptions) ([]*model.Quote, error) {
	quotes, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, storeError("list quotes", err)
	}
	return quotes, nil
}

func (s *QuoteServiceImpl) Get(ctx context.Context, quoteID string) (*model.Quote, error) {
	quote, err := s.repo.FindByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, storeError("find quote", err)
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}
	return quote, nil
}

// UpdateStatus moves a quote to status. Any known status may follow any other.
func (s *QuoteServiceImpl) UpdateStatus(ctx context.Context, quoteID string, status model.QuoteStatus) (*model.Quote, error) {
	if !catalog.ValidStatus(string(status)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	quote, err := s.repo.UpdateStatus(ctx, quoteID, status)
	if err != nil {
		return nil, storeError("update quote status", err)
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}

	s.forgetDocuments(quoteID)
	metrics.RecordStatusChange(string(status))
	return quote, nil
}

func (s *QuoteServiceImpl) Delete(ctx context.Context, quoteID string) error {
	deleted, err := s.repo.Delete(ctx, quoteID)
	if err != nil {
		return storeError("delete quote", err)
	}
	if !deleted {
		return ErrQuoteNotFound
	}
	s.forgetDocuments(quoteID)
	return nil
}

// Export renders the quote as PDF. A rendered document is reused until the quote changes.
func (s *QuoteServiceImpl) Export(ctx context.Context, quoteID string) (*model.Document, error) {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		FileName:    form.ExportFileName(quote.QuoteID),
		ContentType: PDFContentType,
	}

	version := quote.Version()
	if s.documents != nil {
		if cached, ok := s.documents.Get(quote.QuoteID); ok && cached.Version == version {
			metrics.RecordExport("cached", 0)
			doc.Data = cached.Data
			return doc, nil
		}
	}

	start := time.Now()
	data, err := s.renderer.Render(ctx, quote)
	if err != nil {
		metrics.RecordExport("error", 0)
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	metrics.RecordExport("rendered", time.Since(start))

	if s.documents != nil {
		s.documents.Set(quote.QuoteID, CachedDocument{Version: version, Data: data})
	}
	doc.Data = data
	return doc, nil
}

func (s *QuoteServiceImpl) forgetDocuments(quoteID string) {
	if s.documents == nil {
		return
	}
	s.documents.Invalidate(quoteID)
}

func storeError(op string, err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ QuoteService = (*QuoteServiceImpl)(nil)
