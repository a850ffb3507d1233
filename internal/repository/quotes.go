package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// ErrDuplicateQuoteID is returned when a quote_id is already taken.
var ErrDuplicateQuoteID = errors.New("quote id already exists")

// QuoteRepository stores quotes in the quotes collection.
type QuoteRepository struct {
	collection *mongo.Collection
}

// NewQuoteRepository creates a quote repository.
func NewQuoteRepository(db *MongoDB) *QuoteRepository {
	return &QuoteRepository{collection: db.Quotes}
}

// Create inserts a quote, filling ID and CreatedAt when unset.
func (r *QuoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	if quote.ID.IsZero() {
		quote.ID = primitive.NewObjectID()
	}
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}
	if quote.FinishingOptions == nil {
		quote.FinishingOptions = []string{}
	}

	_, err := r.collection.InsertOne(ctx, quote)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateQuoteID
	}
	return err
}

// FindByQuoteID returns nil, nil when no quote has the id.
func (r *QuoteRepository) FindByQuoteID(ctx context.Context, quoteID string) (*model.Quote, error) {
	var quote model.Quote
	err := r.collection.FindOne(ctx, bson.M{"quote_id": quoteID}).Decode(&quote)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

// List returns quotes newest first.
func (r *QuoteRepository) List(ctx context.Context, opts model.QuoteListOptions) ([]*model.Quote, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOptions.SetSkip(int64(opts.Offset))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	quotes := make([]*model.Quote, 0, opts.Limit)
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// UpdateStatus sets the status and returns the updated quote, or nil when the id is unknown.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, quoteID string, status model.QuoteStatus) (*model.Quote, error) {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"status": status, "updated_at": now}}
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var quote model.Quote
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"quote_id": quoteID}, update, after).Decode(&quote)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

// Delete removes a quote and reports whether it existed.
func (r *QuoteRepository) Delete(ctx context.Context, quoteID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"quote_id": quoteID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
