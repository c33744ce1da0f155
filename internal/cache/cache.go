// Package cache provides a TTL key-value cache over pluggable storage backends.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// envelope wraps a stored value with the metadata needed for expiry checks.
type envelope struct {
	// StoredAt is the write time in Unix milliseconds.
	StoredAt int64 `json:"storedAt"`

	// TTL is the entry lifetime in milliseconds.
	TTL int64 `json:"ttl"`

	// Value is the cached payload, left opaque until read.
	Value json.RawMessage `json:"value"`
}

// Config holds configuration for a Cache.
type Config struct {
	// Store is the storage backend. If nil, an in-memory store is used.
	Store Store

	// Logger for cache operations.
	Logger zerolog.Logger

	// Now returns the current time. Defaults to time.Now.
	// Injected so expiry is testable with a fake clock.
	Now func() time.Time
}

// Cache is a TTL cache with lazy expiry: an expired entry is deleted on the
// read that discovers it and is indistinguishable from an absent one.
// There is no background sweep.
type Cache[V any] struct {
	store  Store
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a new Cache over the configured store.
func New[V any](cfg Config) *Cache[V] {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Cache[V]{
		store:  store,
		logger: cfg.Logger,
		now:    now,
	}
}

// Get returns the cached value for key, or false if the key is absent,
// expired, or unreadable. Malformed entries are evicted and treated as
// absent rather than surfaced as errors.
func (c *Cache[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	raw, ok, err := c.store.Load(ctx, key)
	if err != nil {
		c.logger.Warn().Err(err).Str("cache_key", key).Msg("cache read failed, treating as miss")
		return zero, false
	}
	if !ok {
		return zero, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.evict(ctx, key)
		return zero, false
	}

	age := c.now().UnixMilli() - env.StoredAt
	if age > env.TTL {
		c.evict(ctx, key)
		return zero, false
	}

	var value V
	if err := json.Unmarshal(env.Value, &value); err != nil {
		c.evict(ctx, key)
		return zero, false
	}

	return value, true
}

// Set stores value under key with the given TTL, overwriting any existing
// entry. Storage failures are logged and swallowed; the entry will simply be
// absent on the next read and overwritten on the next successful write.
func (c *Cache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).Str("cache_key", key).Msg("cache value not serializable, skipping write")
		return
	}

	raw, err := json.Marshal(envelope{
		StoredAt: c.now().UnixMilli(),
		TTL:      ttl.Milliseconds(),
		Value:    payload,
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("cache_key", key).Msg("cache envelope not serializable, skipping write")
		return
	}

	if err := c.store.Save(ctx, key, raw); err != nil {
		c.logger.Warn().Err(err).Str("cache_key", key).Msg("cache write failed")
	}
}

// Invalidate removes the entry for key, if any.
func (c *Cache[V]) Invalidate(ctx context.Context, key string) {
	c.evict(ctx, key)
}

// Exists reports whether key holds a live entry.
func (c *Cache[V]) Exists(ctx context.Context, key string) bool {
	_, ok := c.Get(ctx, key)
	return ok
}

func (c *Cache[V]) evict(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Warn().Err(err).Str("cache_key", key).Msg("cache delete failed")
	}
}
