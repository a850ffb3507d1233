package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// QuoteRepositoryInterface is the quote store used by the service layer.
type QuoteRepositoryInterface interface {
	Create(ctx context.Context, quote *model.Quote) error
	FindByQuoteID(ctx context.Context, quoteID string) (*model.Quote, error)
	List(ctx context.Context, opts model.QuoteListOptions) ([]*model.Quote, error)
	UpdateStatus(ctx context.Context, quoteID string, status model.QuoteStatus) (*model.Quote, error)
	Delete(ctx context.Context, quoteID string) (bool, error)
}

// StaffRepositoryInterface is the staff account store.
type StaffRepositoryInterface interface {
	Create(ctx context.Context, staff *model.Staff) error
	FindByEmail(ctx context.Context, email string) (*model.Staff, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Staff, error)
}

// LogsRepositoryInterface is the request log and audit store.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

var (
	_ QuoteRepositoryInterface = (*QuoteRepository)(nil)
	_ StaffRepositoryInterface = (*StaffRepository)(nil)
	_ LogsRepositoryInterface  = (*LogsRepository)(nil)
)
