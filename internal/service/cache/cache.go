// Package cache provides an in-memory LRU cache with per-entry expiry, sharded by key.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/print-quote-service/internal/metrics"
)

// Cache is a string-keyed cache.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Invalidate(key string)
	Clear()
	Stop()
	Metrics() Metrics
}

// Metrics is a point-in-time view of cache activity.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// Sharded spreads keys over independent LRU shards to reduce lock contention.
type Sharded[V any] struct {
	name   string
	shards []*lru[V]
	mask   uint32
}

// NewSharded creates a cache holding about capacity entries, each living for ttl.
// name labels its metrics. numShards is rounded up to a power of two; zero or less means 16.
func NewSharded[V any](name string, capacity int, ttl time.Duration, numShards int) *Sharded[V] {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n <<= 1
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	s := &Sharded[V]{name: name, shards: make([]*lru[V], n), mask: uint32(n - 1)}
	for i := range s.shards {
		s.shards[i] = newLRU[V](name, perShard, ttl)
	}
	return s
}

func (s *Sharded[V]) shard(key string) *lru[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[h.Sum32()&s.mask]
}

// Get returns a live entry.
func (s *Sharded[V]) Get(key string) (V, bool) { return s.shard(key).get(key) }

// Set stores value, evicting the shard's least recently used entry when full.
func (s *Sharded[V]) Set(key string, value V) {
	s.shard(key).set(key, value)
	metrics.UpdateCacheSize(s.name, s.Metrics().Size)
}

// Invalidate drops key.
func (s *Sharded[V]) Invalidate(key string) {
	s.shard(key).invalidate(key)
	metrics.UpdateCacheSize(s.name, s.Metrics().Size)
}

// Clear drops every entry and resets counters.
func (s *Sharded[V]) Clear() {
	for _, sh := range s.shards {
		sh.clear()
	}
	metrics.UpdateCacheSize(s.name, 0)
}

// Stop ends the background sweepers.
func (s *Sharded[V]) Stop() {
	for _, sh := range s.shards {
		sh.stop()
	}
}

// Metrics sums all shards.
func (s *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, sh := range s.shards {
		m := sh.metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// Shards reports the shard count.
func (s *Sharded[V]) Shards() int { return len(s.shards) }

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

// lru is one shard: a map plus a doubly linked recency list, head is newest.
type lru[V any] struct {
	name     string
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry[V]
	head     *entry[V]
	tail     *entry[V]
	stopCh   chan struct{}
	stopOnce sync.Once

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func newLRU[V any](name string, capacity int, ttl time.Duration) *lru[V] {
	c := &lru[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
		stopCh:   make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *lru[V]) get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		metrics.RecordCacheOperation(c.name, "get", "miss")
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeEntry(e)
		c.misses.Add(1)
		metrics.RecordCacheOperation(c.name, "get", "expired")
		return zero, false
	}

	c.moveToFront(e)
	c.hits.Add(1)
	metrics.RecordCacheOperation(c.name, "get", "hit")
	return e.value, true
}

func (c *lru[V]) set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	c.items[key] = e
	c.pushFront(e)
	metrics.RecordCacheOperation(c.name, "set", "success")

	if len(c.items) > c.capacity && c.tail != nil {
		c.removeEntry(c.tail)
		c.evictions.Add(1)
		metrics.RecordCacheOperation(c.name, "evict", "capacity")
	}
}

func (c *lru[V]) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		c.removeEntry(e)
		metrics.RecordCacheOperation(c.name, "invalidate", "success")
	}
}

func (c *lru[V]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry[V], c.capacity)
	c.head, c.tail = nil, nil
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

func (c *lru[V]) stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *lru[V]) metrics() Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()
	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

func (c *lru[V]) sweep() {
	interval := c.ttl
	if interval > time.Minute || interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired(time.Now())
		case <-c.stopCh:
			return
		}
	}
}

func (c *lru[V]) removeExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.items {
		if now.After(e.expiresAt) {
			c.removeEntry(e)
		}
	}
}

func (c *lru[V]) removeEntry(e *entry[V]) {
	delete(c.items, e.key)
	c.unlink(e)
}

func (c *lru[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *lru[V]) pushFront(e *entry[V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lru[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

var _ Cache[[]byte] = (*Sharded[[]byte])(nil)
