//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

func newQuote(id string, created time.Time) *model.Quote {
	return &model.Quote{
		QuoteID: id,
		PrintSpec: model.PrintSpec{
			ClientName:       "Acme",
			ProductType:      "Flyer",
			FinishedSize:     "A4 (210 × 297mm)",
			PageCount:        1,
			Sidedness:        "single",
			Quantity:         100,
			DeliveryLocation: "Metro Melbourne",
			InkType:          "CMYK",
			PMSColorCount:    1,
		},
		EstimatedCost: 114.75,
		Status:        model.QuoteStatusPending,
		CreatedAt:     created,
	}
}

func TestQuoteRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openTestDB(t)
	repo := NewQuoteRepository(db)

	t.Run("create and find", func(t *testing.T) {
		q := newQuote("AAAA0001", time.Time{})
		require.NoError(t, repo.Create(ctx, q))
		assert.False(t, q.ID.IsZero())
		assert.False(t, q.CreatedAt.IsZero())
		assert.NotNil(t, q.FinishingOptions)

		found, err := repo.FindByQuoteID(ctx, "AAAA0001")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Acme", found.ClientName)
		assert.Equal(t, []string{}, found.FinishingOptions)
	})

	t.Run("duplicate quote id", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newQuote("DUPE0001", time.Time{})))
		err := repo.Create(ctx, newQuote("DUPE0001", time.Time{}))
		assert.ErrorIs(t, err, ErrDuplicateQuoteID)
	})

	t.Run("find missing", func(t *testing.T) {
		found, err := repo.FindByQuoteID(ctx, "MISSING0")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("update status", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newQuote("STAT0001", time.Time{})))

		updated, err := repo.UpdateStatus(ctx, "STAT0001", model.QuoteStatusApproved)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, model.QuoteStatusApproved, updated.Status)
		require.NotNil(t, updated.UpdatedAt)

		missing, err := repo.UpdateStatus(ctx, "MISSING0", model.QuoteStatusApproved)
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newQuote("DELE0001", time.Time{})))

		deleted, err := repo.Delete(ctx, "DELE0001")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "DELE0001")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestQuoteRepository_ListNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openTestDB(t)
	repo := NewQuoteRepository(db)

	base := time.Date(2025, 1, 28, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newQuote(fmt.Sprintf("LIST%04d", i), base.Add(time.Duration(i)*time.Minute))))
	}

	page, err := repo.List(ctx, model.QuoteListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "LIST0004", page[0].QuoteID)
	assert.Equal(t, "LIST0003", page[1].QuoteID)

	page, err = repo.List(ctx, model.QuoteListOptions{Limit: 10, Offset: 4})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "LIST0000", page[0].QuoteID)
}
