package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis. INCR is atomic server-side, so
// concurrent requests from any number of instances count correctly.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore returns a Store over the given client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) IncrementAndGet(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	// Pipeline INCR with EXPIRE NX so the window expiry is set exactly once,
	// by whichever request created the key.
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return incr.Val(), nil
}
