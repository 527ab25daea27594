package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appcatalog "github.com/kopitoko/backend/internal/application/catalog"
)

const productKeyPrefix = "product:"

// RedisProductCache caches product responses in Redis. All failures
// are logged and treated as cache misses so the storefront keeps
// working when Redis is down.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisProductCache creates a Redis-backed product cache
func NewRedisProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisProductCache {
	return &RedisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetProduct implements catalog.ProductCache
func (c *RedisProductCache) GetProduct(ctx context.Context, id uuid.UUID) (*appcatalog.ProductResponse, bool) {
	data, err := c.client.Get(ctx, productKeyPrefix+id.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("product cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var resp appcatalog.ProductResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("product cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &resp, true
}

// SetProduct implements catalog.ProductCache
func (c *RedisProductCache) SetProduct(ctx context.Context, resp appcatalog.ProductResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKeyPrefix+resp.ID.String(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache set failed", zap.Error(err))
	}
}

// Invalidate implements catalog.ProductCache
func (c *RedisProductCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, productKeyPrefix+id.String()).Err(); err != nil {
		c.logger.Warn("product cache invalidate failed", zap.Error(err))
	}
}

// MemoryProductCache is an in-process product cache used when Redis is
// not configured.
type MemoryProductCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]memoryEntry
}

type memoryEntry struct {
	resp      appcatalog.ProductResponse
	expiresAt time.Time
}

// NewMemoryProductCache creates an in-memory product cache
func NewMemoryProductCache(ttl time.Duration) *MemoryProductCache {
	return &MemoryProductCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]memoryEntry),
	}
}

// GetProduct implements catalog.ProductCache
func (c *MemoryProductCache) GetProduct(ctx context.Context, id uuid.UUID) (*appcatalog.ProductResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	resp := entry.resp
	return &resp, true
}

// SetProduct implements catalog.ProductCache
func (c *MemoryProductCache) SetProduct(ctx context.Context, resp appcatalog.ProductResponse) {
	c.mu.Lock()
	c.entries[resp.ID] = memoryEntry{resp: resp, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate implements catalog.ProductCache
func (c *MemoryProductCache) Invalidate(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

var (
	_ appcatalog.ProductCache = (*RedisProductCache)(nil)
	_ appcatalog.ProductCache = (*MemoryProductCache)(nil)
)
