//go:build integration

package http

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/testutil"
)

// TestMain shares one MongoDB container between the handler integration tests.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

// openIntegrationDB connects to a per-test database, dropped when the test ends.
func openIntegrationDB(t *testing.T) *repository.MongoDB {
	t.Helper()
	db, err := repository.NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}
