package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the client-chosen deduplication key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long a response can be replayed.
	IdempotencyKeyTTL = 5 * time.Minute

	maxIdempotencyBody = 1 << 20
)

// replayedHeaders are copied from the original response when replaying.
var replayedHeaders = []string{"Content-Type", "Location"}

// CachedResponse is a replayable 2xx response.
type CachedResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IdempotencyConfig configures Idempotency.
type IdempotencyConfig struct {
	Cache   cache.Cache[*CachedResponse]
	Enabled bool
}

// DefaultIdempotencyConfig keeps up to 10k responses for IdempotencyKeyTTL.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   cache.NewSharded[*CachedResponse]("idempotency", 10000, IdempotencyKeyTTL, 8),
		Enabled: true,
	}
}

// Idempotency replays the stored response of an earlier POST, PUT or PATCH
// carrying the same Idempotency-Key, method, path and body. Only 2xx responses
// are stored, so a failed create can be retried with the same key.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, err := idempotencyCacheKey(key, c.Request)
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}

		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			for _, h := range replayedHeaders {
				if v := cached.Header.Get(h); v != "" {
					c.Header(h, v)
				}
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Status(cached.StatusCode)
			_, _ = c.Writer.Write(cached.Body)
			c.Abort()
			return
		}

		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			cfg.Cache.Set(cacheKey, &CachedResponse{
				StatusCode: status,
				Header:     writer.Header().Clone(),
				Body:       writer.body.Bytes(),
			})
		}
	}
}

// idempotencyCacheKey hashes the key with the request identity and restores the body.
func idempotencyCacheKey(key string, req *http.Request) (string, error) {
	h := sha256.New()
	h.Write([]byte(key))
	h.Write([]byte{0})
	h.Write([]byte(req.Method))
	h.Write([]byte{0})
	h.Write([]byte(req.URL.Path))
	h.Write([]byte{0})

	if req.Body != nil {
		body, err := io.ReadAll(io.LimitReader(req.Body, maxIdempotencyBody))
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
