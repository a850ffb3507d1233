//go:build !integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/mocks"
)

func tripBreaker() *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             "test",
	})
}

func TestQuoteRepositoryWithCircuitBreaker_OpensOnFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockQuoteRepository)
	repo.On("FindByQuoteID", ctx, "AB12CD34").Return(nil, errors.New("connection reset")).Once()

	wrapped := NewQuoteRepositoryWithCircuitBreaker(repo, tripBreaker())

	_, err := wrapped.FindByQuoteID(ctx, "AB12CD34")
	assert.EqualError(t, err, "connection reset")

	_, err = wrapped.FindByQuoteID(ctx, "AB12CD34")
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.True(t, wrapped.GetCircuitBreaker().IsOpen())
	repo.AssertExpectations(t)
}

func TestQuoteRepositoryWithCircuitBreaker_DuplicateDoesNotTrip(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockQuoteRepository)
	repo.On("Create", ctx, mock.Anything).Return(ErrDuplicateQuoteID)

	wrapped := NewQuoteRepositoryWithCircuitBreaker(repo, tripBreaker())

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, wrapped.Create(ctx, &model.Quote{QuoteID: "AB12CD34"}), ErrDuplicateQuoteID)
	}
	assert.Equal(t, circuitbreaker.StateClosed, wrapped.GetCircuitBreaker().State())
}

func TestQuoteRepositoryWithCircuitBreaker_PassThrough(t *testing.T) {
	ctx := context.Background()
	q := &model.Quote{QuoteID: "AB12CD34", Status: model.QuoteStatusApproved}
	repo := new(mocks.MockQuoteRepository)
	repo.On("List", ctx, model.QuoteListOptions{Limit: 5}).Return([]*model.Quote{q}, nil)
	repo.On("UpdateStatus", ctx, "AB12CD34", model.QuoteStatusApproved).Return(q, nil)
	repo.On("Delete", ctx, "AB12CD34").Return(true, nil)

	wrapped := NewQuoteRepositoryWithCircuitBreaker(repo, circuitbreaker.New(circuitbreaker.DefaultConfig()))

	list, err := wrapped.List(ctx, model.QuoteListOptions{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, []*model.Quote{q}, list)

	updated, err := wrapped.UpdateStatus(ctx, "AB12CD34", model.QuoteStatusApproved)
	require.NoError(t, err)
	assert.Same(t, q, updated)

	deleted, err := wrapped.Delete(ctx, "AB12CD34")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestLogsRepositoryWithCircuitBreaker_DropsWritesWhenOpen(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockLogsRepository)
	repo.On("Create", ctx, mock.Anything).Return(errors.New("write failed")).Once()

	wrapped := NewLogsRepositoryWithCircuitBreaker(repo, tripBreaker())

	assert.Error(t, wrapped.Create(ctx, &model.LogEntry{Message: "first"}))
	assert.NoError(t, wrapped.Create(ctx, &model.LogEntry{Message: "dropped"}))
	assert.NoError(t, wrapped.CreateMany(ctx, []*model.LogEntry{{Message: "dropped"}}))

	_, err := wrapped.Count(ctx, model.LogQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	repo.AssertExpectations(t)
}

func TestStaffRepositoryWithCircuitBreaker_FindByEmail(t *testing.T) {
	ctx := context.Background()
	staff := &model.Staff{Email: "jo@printshop.example"}
	repo := new(mocks.MockStaffRepository)
	repo.On("FindByEmail", ctx, "jo@printshop.example").Return(staff, nil)

	wrapped := NewStaffRepositoryWithCircuitBreaker(repo, circuitbreaker.New(circuitbreaker.DefaultConfig()))

	found, err := wrapped.FindByEmail(ctx, "jo@printshop.example")
	require.NoError(t, err)
	assert.Same(t, staff, found)
}
