package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/logging"
	"github.com/hpungsan/satchel/internal/packing"
)

// Cache stores weather summaries by key.
type Cache interface {
	Get(ctx context.Context, key string) (*packing.WeatherSummary, bool, error)
	Set(ctx context.Context, key string, w *packing.WeatherSummary, ttl time.Duration) error
}

// CacheKey identifies a lookup: normalized destination plus the date range.
func CacheKey(destination string, start, end packing.Date) string {
	dest := strings.Join(strings.Fields(strings.ToLower(destination)), " ")
	return fmt.Sprintf("weather:%s:%s:%s", dest, start, end)
}

// Cached wraps a Provider with a Cache. Cache errors are logged and bypassed;
// only non-nil summaries are stored.
type Cached struct {
	Provider Provider
	Cache    Cache
	TTL      time.Duration

	log *zap.Logger
}

// NewCached creates a caching Provider.
func NewCached(p Provider, c Cache, ttl time.Duration, logger *zap.Logger) *Cached {
	return &Cached{Provider: p, Cache: c, TTL: ttl, log: logging.Component(logger, "weather_cache")}
}

// Lookup implements Provider.
func (c *Cached) Lookup(ctx context.Context, destination string, start, end packing.Date) (*packing.WeatherSummary, error) {
	key := CacheKey(destination, start, end)

	w, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		c.log.Warn("weather cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return w, nil
	}

	w, err = c.Provider.Lookup(ctx, destination, start, end)
	if err != nil || w == nil {
		return w, err
	}

	if err := c.Cache.Set(ctx, key, w, c.TTL); err != nil {
		c.log.Warn("weather cache write failed", zap.String("key", key), zap.Error(err))
	}
	return w, nil
}

// MemoryCache is an in-process Cache with per-entry expiry.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// Now is the clock used for expiry; tests may replace it.
	Now func() time.Time
}

type memoryEntry struct {
	summary   packing.WeatherSummary
	expiresAt time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), Now: time.Now}
}

// Get implements Cache. Expired entries are dropped on read.
func (m *MemoryCache) Get(_ context.Context, key string) (*packing.WeatherSummary, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.Now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	w := e.summary
	return &w, true, nil
}

// Set implements Cache.
func (m *MemoryCache) Set(_ context.Context, key string, w *packing.WeatherSummary, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{summary: *w, expiresAt: m.Now().Add(ttl)}
	return nil
}

// RedisCache is a Cache shared between processes through Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis. addr is either a redis:// URL or a host:port.
func NewRedisCache(addr string) (*RedisCache, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

// Get implements Cache.
func (r *RedisCache) Get(ctx context.Context, key string) (*packing.WeatherSummary, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var w packing.WeatherSummary
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, false, err
	}
	return &w, true, nil
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, key string, w *packing.WeatherSummary, ttl time.Duration) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// Close releases the Redis connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
