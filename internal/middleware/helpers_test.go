package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingLoggingService keeps every entry it is asked to store.
type recordingLoggingService struct {
	mu      sync.Mutex
	entries []*model.LogEntry
	batches int
	err     error
}

func (r *recordingLoggingService) CreateLog(_ context.Context, entry *model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return r.err
}

func (r *recordingLoggingService) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches++
	r.entries = append(r.entries, entries...)
	return r.err
}

func (r *recordingLoggingService) QueryLogs(context.Context, model.LogQueryOptions) ([]*model.LogEntry, error) {
	return nil, nil
}

func (r *recordingLoggingService) CountLogs(context.Context, model.LogQueryOptions) (int64, error) {
	return 0, nil
}

func (r *recordingLoggingService) QuoteHistory(context.Context, string, int) ([]*model.LogEntry, error) {
	return nil, nil
}

func (r *recordingLoggingService) snapshot() []*model.LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.LogEntry(nil), r.entries...)
}

func (r *recordingLoggingService) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
