//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openTestDB(t)
	require.NoError(t, db.SetLogsTTL(ctx, 24*time.Hour))
	repo := NewLogsRepository(db)

	require.NoError(t, repo.Create(ctx, &model.LogEntry{Level: "info", Message: "request", RequestID: "req-1"}))
	require.NoError(t, repo.CreateMany(ctx, []*model.LogEntry{
		{Level: "info", Message: "created", QuoteID: "AB12CD34", ActionType: model.ActionQuoteCreated},
		{Level: "info", Message: "approved", QuoteID: "AB12CD34", ActionType: model.ActionStatusChanged},
		{Level: "error", Message: "export failed", QuoteID: "ZZ99ZZ99", ActionType: model.ActionQuoteExported},
	}))
	require.NoError(t, repo.CreateMany(ctx, nil))

	tests := []struct {
		name  string
		opts  model.LogQueryOptions
		count int64
	}{
		{"all", model.LogQueryOptions{}, 4},
		{"by request", model.LogQueryOptions{RequestID: "req-1"}, 1},
		{"by quote", model.LogQueryOptions{QuoteID: "AB12CD34"}, 2},
		{"by action", model.LogQueryOptions{ActionType: model.ActionStatusChanged}, 1},
		{"by level", model.LogQueryOptions{Level: "error"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := repo.Count(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.count, count)

			entries, err := repo.Query(ctx, tt.opts)
			require.NoError(t, err)
			assert.Len(t, entries, int(tt.count))
		})
	}

	t.Run("time window and limit", func(t *testing.T) {
		start := time.Now().Add(-time.Minute)
		entries, err := repo.Query(ctx, model.LogQueryOptions{StartTime: &start, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.False(t, entries[0].Timestamp.Before(entries[1].Timestamp))
	})
}
