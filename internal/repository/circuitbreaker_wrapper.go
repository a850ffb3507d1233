package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// guarded runs fn through the breaker and hands back its result.
func guarded[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var fnErr error
		result, fnErr = fn()
		return fnErr
	})
	return result, err
}

// QuoteRepositoryWithCircuitBreaker protects quote storage. An open circuit surfaces as
// circuitbreaker.ErrCircuitOpen so handlers can answer 503.
type QuoteRepositoryWithCircuitBreaker struct {
	repo           QuoteRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewQuoteRepositoryWithCircuitBreaker wraps repo.
func NewQuoteRepositoryWithCircuitBreaker(repo QuoteRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *QuoteRepositoryWithCircuitBreaker {
	return &QuoteRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *QuoteRepositoryWithCircuitBreaker) Create(ctx context.Context, quote *model.Quote) error {
	var duplicate bool
	err := r.circuitBreaker.Execute(ctx, func() error {
		err := r.repo.Create(ctx, quote)
		// A taken id does not count against the database.
		if errors.Is(err, ErrDuplicateQuoteID) {
			duplicate = true
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}
	if duplicate {
		return ErrDuplicateQuoteID
	}
	return nil
}

func (r *QuoteRepositoryWithCircuitBreaker) FindByQuoteID(ctx context.Context, quoteID string) (*model.Quote, error) {
	return guarded(ctx, r.circuitBreaker, func() (*model.Quote, error) {
		return r.repo.FindByQuoteID(ctx, quoteID)
	})
}

func (r *QuoteRepositoryWithCircuitBreaker) List(ctx context.Context, opts model.QuoteListOptions) ([]*model.Quote, error) {
	return guarded(ctx, r.circuitBreaker, func() ([]*model.Quote, error) {
		return r.repo.List(ctx, opts)
	})
}

func (r *QuoteRepositoryWithCircuitBreaker) UpdateStatus(ctx context.Context, quoteID string, status model.QuoteStatus) (*model.Quote, error) {
	return guarded(ctx, r.circuitBreaker, func() (*model.Quote, error) {
		return r.repo.UpdateStatus(ctx, quoteID, status)
	})
}

func (r *QuoteRepositoryWithCircuitBreaker) Delete(ctx context.Context, quoteID string) (bool, error) {
	return guarded(ctx, r.circuitBreaker, func() (bool, error) {
		return r.repo.Delete(ctx, quoteID)
	})
}

// GetCircuitBreaker exposes the breaker for health and metrics.
func (r *QuoteRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// StaffRepositoryWithCircuitBreaker protects staff lookups during login.
type StaffRepositoryWithCircuitBreaker struct {
	repo           StaffRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewStaffRepositoryWithCircuitBreaker wraps repo.
func NewStaffRepositoryWithCircuitBreaker(repo StaffRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *StaffRepositoryWithCircuitBreaker {
	return &StaffRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *StaffRepositoryWithCircuitBreaker) Create(ctx context.Context, staff *model.Staff) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, staff)
	})
}

func (r *StaffRepositoryWithCircuitBreaker) FindByEmail(ctx context.Context, email string) (*model.Staff, error) {
	return guarded(ctx, r.circuitBreaker, func() (*model.Staff, error) {
		return r.repo.FindByEmail(ctx, email)
	})
}

func (r *StaffRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Staff, error) {
	return guarded(ctx, r.circuitBreaker, func() (*model.Staff, error) {
		return r.repo.FindByID(ctx, id)
	})
}

// LogsRepositoryWithCircuitBreaker protects the log store. Writes are dropped while the
// circuit is open; logging never fails a request.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error) {
	return guarded(ctx, r.circuitBreaker, func() ([]*model.LogEntry, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return guarded(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker exposes the breaker for health and metrics.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

var (
	_ QuoteRepositoryInterface = (*QuoteRepositoryWithCircuitBreaker)(nil)
	_ StaffRepositoryInterface = (*StaffRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface  = (*LogsRepositoryWithCircuitBreaker)(nil)
)
