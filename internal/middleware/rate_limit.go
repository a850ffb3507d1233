package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/i18n"
)

const defaultNumShards = 16

// clientWindow tracks one client's fixed window.
type clientWindow struct {
	remaining int
	resetAt   time.Time
}

type rateLimiterShard struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
}

// RateLimiter is a fixed-window limiter sharded by client key.
type RateLimiter struct {
	shards []*rateLimiterShard
	rate   int
	window time.Duration
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

// NewRateLimiter allows rate requests per window per client.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with an explicit shard count.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{clients: make(map[string]*clientWindow)}
	}

	rl := &RateLimiter{
		shards: shards,
		rate:   rate,
		window: window,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) shard(key string) *rateLimiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// allow consumes one request for key.
func (rl *RateLimiter) allow(key string) (ok bool, remaining int, resetAt time.Time) {
	s := rl.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := rl.now()
	w, exists := s.clients[key]
	if !exists || !now.Before(w.resetAt) {
		w = &clientWindow{remaining: rl.rate, resetAt: now.Add(rl.window)}
		s.clients[key] = w
	}
	if w.remaining <= 0 {
		return false, 0, w.resetAt
	}
	w.remaining--
	return true, w.remaining, w.resetAt
}

// RateLimit limits by client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context) string { return "ip:" + c.ClientIP() })
}

// StaffRateLimit limits authenticated staff by id and everyone else by IP.
func (rl *RateLimiter) StaffRateLimit() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context) string {
		if id, _ := staffIdentity(c); id != "" {
			return "staff:" + id
		}
		return "ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) middleware(keyOf func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining, resetAt := rl.allow(keyOf(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			retry := int(math.Ceil(resetAt.Sub(rl.now()).Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.removeExpired()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) removeExpired() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for key, w := range s.clients {
			if !now.Before(w.resetAt) {
				delete(s.clients, key)
			}
		}
		s.mu.Unlock()
	}
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// Clients returns the number of tracked clients.
func (rl *RateLimiter) Clients() int {
	total := 0
	for _, s := range rl.shards {
		s.mu.Lock()
		total += len(s.clients)
		s.mu.Unlock()
	}
	return total
}
