package service

import (
	"context"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/repository"
)

const (
	defaultLogQueryLimit = 100
	maxLogQueryLimit     = 1000
)

// LoggingService stores request logs and quote audit entries.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
	// QuoteHistory returns the audit trail of one quote, newest first.
	QuoteHistory(ctx context.Context, quoteID string, limit int) ([]*model.LogEntry, error)
}

// LoggingServiceImpl implements LoggingService over a logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a logging service.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo}
}

func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, entry)
}

func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, entries)
}

// QueryLogs clamps the limit to [1, 1000], defaulting to 100.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error) {
	opts.Limit = clampLimit(opts.Limit)
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	return s.repo.Query(ctx, opts)
}

func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, opts)
}

func (s *LoggingServiceImpl) QuoteHistory(ctx context.Context, quoteID string, limit int) ([]*model.LogEntry, error) {
	entries, err := s.QueryLogs(ctx, model.LogQueryOptions{QuoteID: quoteID, Limit: limit})
	if err != nil {
		return nil, err
	}
	history := entries[:0]
	for _, e := range entries {
		if e.ActionType != "" {
			history = append(history, e)
		}
	}
	return history, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLogQueryLimit
	case limit > maxLogQueryLimit:
		return maxLogQueryLimit
	default:
		return limit
	}
}
