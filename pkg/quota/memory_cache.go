package quota

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tenderwatch/accesskit/pkg/cache"
)

type cachedCount struct {
	count     int64
	expiresAt time.Time
}

// MemoryCache implements Cache on an in-process LRU. Suitable for
// single-instance deployments and tests; multi-instance deployments should
// use RedisCache so invalidations reach every replica.
type MemoryCache struct {
	lru *cache.LRUCache[string, cachedCount]
	ttl time.Duration
}

// NewMemoryCache returns an in-process Cache holding at most capacity
// entries. A non-positive ttl falls back to 30 seconds.
func NewMemoryCache(capacity int, ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &MemoryCache{
		lru: cache.NewLRUCache[string, cachedCount](capacity),
		ttl: ttl,
	}
}

func (c *MemoryCache) GetCount(ctx context.Context, accountID uuid.UUID, period PeriodKey) (int64, bool, error) {
	entry, ok := c.lru.Get(cacheKey(accountID, period))
	if !ok || time.Now().After(entry.expiresAt) {
		return 0, false, nil
	}
	return entry.count, true, nil
}

func (c *MemoryCache) SetCount(ctx context.Context, accountID uuid.UUID, period PeriodKey, count int64) error {
	c.lru.Put(cacheKey(accountID, period), cachedCount{
		count:     count,
		expiresAt: time.Now().Add(c.ttl),
	})
	return nil
}

func (c *MemoryCache) Invalidate(ctx context.Context, accountID uuid.UUID, period PeriodKey) error {
	c.lru.Remove(cacheKey(accountID, period))
	return nil
}
