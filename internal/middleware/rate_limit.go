package middleware

import (
	"hash/maphash"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/domain/dto"
	"github.com/milestonetrucks/voice-agent/internal/i18n"
)

const defaultNumShards = 16

// window counts requests for one key since start.
type window struct {
	start time.Time
	used  int
}

type limiterShard struct {
	mu      sync.Mutex
	windows map[string]*window
}

type decision struct {
	allowed    bool
	remaining  int
	retryAfter time.Duration
}

// RateLimiter is a fixed-window limiter. Keys are spread over shards so busy callers
// do not contend on one lock.
type RateLimiter struct {
	shards   []*limiterShard
	seed     maphash.Seed
	limit    int
	period   time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewRateLimiter allows limit requests per period for each key.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return NewShardedRateLimiter(limit, period, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with a custom shard count.
func NewShardedRateLimiter(limit int, period time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	rl := &RateLimiter{
		shards: make([]*limiterShard, numShards),
		seed:   maphash.MakeSeed(),
		limit:  limit,
		period: period,
		stopCh: make(chan struct{}),
		now:    time.Now,
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{windows: make(map[string]*window)}
	}

	go rl.sweep()
	return rl
}

func (rl *RateLimiter) shardFor(key string) *limiterShard {
	return rl.shards[maphash.String(rl.seed, key)%uint64(len(rl.shards))]
}

func (rl *RateLimiter) take(key string) decision {
	shard := rl.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := rl.now()
	w, ok := shard.windows[key]
	if !ok || now.Sub(w.start) > rl.period {
		w = &window{start: now}
		shard.windows[key] = w
	}

	if w.used >= rl.limit {
		return decision{retryAfter: w.start.Add(rl.period).Sub(now)}
	}
	w.used++
	return decision{allowed: true, remaining: rl.limit - w.used}
}

// allow is take without the retry hint.
func (rl *RateLimiter) allow(key string) (bool, int) {
	d := rl.take(key)
	return d.allowed, d.remaining
}

// RateLimit limits requests per authenticated caller, or per client IP when the
// request is anonymous.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		d := rl.take(rateLimitKey(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.remaining))

		if !d.allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(d.retryAfter)))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

func retryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}

func rateLimitKey(c *gin.Context) string {
	if caller := GetCaller(c); caller != "" {
		return "caller:" + caller
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanupExpired forgets keys idle for two periods.
func (rl *RateLimiter) cleanupExpired() {
	cutoff := rl.now().Add(-2 * rl.period)
	for _, shard := range rl.shards {
		shard.mu.Lock()
		for key, w := range shard.windows {
			if w.start.Before(cutoff) {
				delete(shard.windows, key)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the sweeper.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats returns the number of tracked keys, total and per shard.
func (rl *RateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.windows)
		shard.mu.Unlock()
		total += perShard[i]
	}
	return total, perShard
}
