package quota

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache on Redis with a short TTL.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache returns a Cache over the given client. A non-positive ttl
// falls back to 30 seconds.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(accountID uuid.UUID, period PeriodKey) string {
	return fmt.Sprintf("quota:%s:%s", accountID, period)
}

func (c *RedisCache) GetCount(ctx context.Context, accountID uuid.UUID, period PeriodKey) (int64, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(accountID, period)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, errors.Join(ErrCacheUnavailable, err)
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// Corrupt entry: treat as a miss so the store read repairs it.
		return 0, false, nil
	}
	return count, true, nil
}

func (c *RedisCache) SetCount(ctx context.Context, accountID uuid.UUID, period PeriodKey, count int64) error {
	if err := c.client.Set(ctx, cacheKey(accountID, period), strconv.FormatInt(count, 10), c.ttl).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, accountID uuid.UUID, period PeriodKey) error {
	if err := c.client.Del(ctx, cacheKey(accountID, period)).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}
