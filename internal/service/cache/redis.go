package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisCache stores JSON-encoded values in Redis so replicas share one cache.
// Redis failures degrade to misses; the store API remains the source of truth.
type RedisCache[V any] struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a cache that namespaces its keys under prefix.
func NewRedisCache[V any](client redis.UniversalClient, prefix string, ttl time.Duration) *RedisCache[V] {
	return &RedisCache[V]{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisCache[V]) key(k string) string {
	return r.prefix + k
}

// Get returns the decoded value stored under key.
func (r *RedisCache[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheOperation("get", "miss")
		return zero, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache get failed")
		metrics.RecordCacheOperation("get", "error")
		return zero, false
	}

	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Dropping undecodable cache entry")
		r.Invalidate(ctx, key)
		metrics.RecordCacheOperation("get", "error")
		return zero, false
	}

	metrics.RecordCacheOperation("get", "hit")
	return v, true
}

// Set stores value under key with the cache TTL.
func (r *RedisCache[V]) Set(ctx context.Context, key string, value V) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache encode failed")
		metrics.RecordCacheOperation("set", "error")
		return
	}
	if err := r.client.Set(ctx, r.key(key), raw, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache set failed")
		metrics.RecordCacheOperation("set", "error")
		return
	}
	metrics.RecordCacheOperation("set", "success")
}

// Invalidate deletes key.
func (r *RedisCache[V]) Invalidate(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache delete failed")
		return
	}
	metrics.RecordCacheOperation("invalidate", "success")
}

// Clear deletes every key under the cache prefix.
func (r *RedisCache[V]) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("Redis cache scan failed")
		return
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis cache clear failed")
			return
		}
	}
	metrics.RecordCacheOperation("clear", "success")
}

// Stop is a no-op; the client is owned and closed by the caller.
func (r *RedisCache[V]) Stop() {}

// Ping reports whether Redis is reachable.
func (r *RedisCache[V]) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
