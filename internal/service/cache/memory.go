package cache

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/metrics"
)

const defaultShards = 16

// ShardedCache is an in-process LRU cache with TTL expiry, split into shards by key
// hash to reduce lock contention.
type ShardedCache[V any] struct {
	name      string
	shards    []*ttlCache[V]
	shardMask uint32
}

// NewShardedCache creates a cache holding roughly capacity entries for ttl each.
// numShards is rounded up to a power of two; zero or less means 16.
func NewShardedCache[V any](capacity int, ttl time.Duration, numShards int) *ShardedCache[V] {
	if numShards <= 0 {
		numShards = defaultShards
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*ttlCache[V], n)
	for i := range shards {
		shards[i] = newTTLCache[V](perShard, ttl)
	}

	return &ShardedCache[V]{
		name:      "default",
		shards:    shards,
		shardMask: uint32(n - 1),
	}
}

// Named sets the label the cache reports its size and capacity under.
func (sc *ShardedCache[V]) Named(name string) *ShardedCache[V] {
	sc.name = name
	return sc
}

func (sc *ShardedCache[V]) shard(key string) *ttlCache[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.shardMask]
}

// Get retrieves a value from the appropriate shard.
func (sc *ShardedCache[V]) Get(_ context.Context, key string) (V, bool) {
	return sc.shard(key).Get(key)
}

// Set stores a value in the appropriate shard.
func (sc *ShardedCache[V]) Set(_ context.Context, key string, value V) {
	sc.shard(key).Set(key, value)
	sc.publish()
}

// Invalidate removes a key from the appropriate shard.
func (sc *ShardedCache[V]) Invalidate(_ context.Context, key string) {
	sc.shard(key).Invalidate(key)
}

// Clear removes all entries from all shards.
func (sc *ShardedCache[V]) Clear(_ context.Context) {
	for _, s := range sc.shards {
		s.Clear()
	}
	sc.publish()
}

// Stop shuts down the cleanup goroutines of all shards.
func (sc *ShardedCache[V]) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// Metrics returns aggregated metrics from all shards.
func (sc *ShardedCache[V]) Metrics() Metrics {
	var total Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

func (sc *ShardedCache[V]) publish() {
	m := sc.Metrics()
	metrics.UpdateCacheMetrics(sc.name, m.Size, m.Capacity)
}

// ttlCache is a single LRU list with per-entry expiry.
type ttlCache[V any] struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*entry[V]
	head      *entry[V]
	tail      *entry[V]
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

func newTTLCache[V any](capacity int, ttl time.Duration) *ttlCache[V] {
	c := &ttlCache[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
		stopCh:   make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

func (c *ttlCache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *ttlCache[V]) Metrics() Metrics {
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

func (c *ttlCache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	e, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeEntry(e)
		c.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return zero, false
	}
	c.moveToFront(e)
	value := e.value
	c.mu.Unlock()

	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return value, true
}

// Set adds or refreshes key. The least recently used entry is evicted past capacity.
func (c *ttlCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		metrics.RecordCacheOperation("set", "success")
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	c.items[key] = e
	c.addToFront(e)

	if len(c.items) > c.capacity {
		c.removeTail()
		c.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

func (c *ttlCache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.removeEntry(e)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

func (c *ttlCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry[V], c.capacity)
	c.head = nil
	c.tail = nil
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)

	metrics.RecordCacheOperation("clear", "success")
}

// startCleanup sweeps expired entries once a minute while the shard is over 80% full.
func (c *ttlCache[V]) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if len(c.items) > c.capacity*80/100 {
				c.cleanupLocked(time.Now())
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

func (c *ttlCache[V]) cleanupLocked(now time.Time) {
	for _, e := range c.items {
		if now.After(e.expiresAt) {
			c.removeEntry(e)
		}
	}
}

func (c *ttlCache[V]) removeEntry(e *entry[V]) {
	delete(c.items, e.key)
	c.unlink(e)
}

func (c *ttlCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *ttlCache[V]) addToFront(e *entry[V]) {
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

func (c *ttlCache[V]) unlink(e *entry[V]) {
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

func (c *ttlCache[V]) removeTail() {
	if c.tail == nil {
		return
	}
	c.removeEntry(c.tail)
}
