package quota_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderwatch/accesskit/pkg/quota"
)

// failingStore simulates an unreachable persistence service.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, accountID uuid.UUID, period quota.PeriodKey) (int64, error) {
	return 0, errors.Join(quota.ErrStoreUnavailable, errors.New("connection refused"))
}

func (failingStore) Increment(ctx context.Context, accountID uuid.UUID, period quota.PeriodKey) (int64, error) {
	return 0, errors.Join(quota.ErrStoreUnavailable, errors.New("connection refused"))
}

// failingCache simulates an unreachable cache layer.
type failingCache struct{}

func (failingCache) GetCount(ctx context.Context, accountID uuid.UUID, period quota.PeriodKey) (int64, bool, error) {
	return 0, false, quota.ErrCacheUnavailable
}

func (failingCache) SetCount(ctx context.Context, accountID uuid.UUID, period quota.PeriodKey, count int64) error {
	return quota.ErrCacheUnavailable
}

func (failingCache) Invalidate(ctx context.Context, accountID uuid.UUID, period quota.PeriodKey) error {
	return quota.ErrCacheUnavailable
}

// countingCache records invalidations so tests can assert commit behavior.
type countingCache struct {
	mu            sync.Mutex
	inner         *quota.MemoryCache
	invalidations int
}

func newCountingCache() *countingCache {
	return &countingCache{inner: quota.NewMemoryCache(64, time.Minute)}
}

func (c *countingCache) GetCount(ctx context.Context, accountID uuid.UUID, period quota.PeriodKey) (int64, bool, error) {
	return c.inner.GetCount(ctx, accountID, period)
}

func (c *countingCache) SetCount(ctx context.Context, accountID uuid.UUID, period quota.PeriodKey, count int64) error {
	return c.inner.SetCount(ctx, accountID, period, count)
}

func (c *countingCache) Invalidate(ctx context.Context, accountID uuid.UUID, period quota.PeriodKey) error {
	c.mu.Lock()
	c.invalidations++
	c.mu.Unlock()
	return c.inner.Invalidate(ctx, accountID, period)
}

var quiet = quota.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func TestCheckAndReserve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	period := quota.PeriodKey("2026-08")

	t.Run("unlimited plans always allow", func(t *testing.T) {
		t.Parallel()

		ledger := quota.NewLedger(quota.NewMemoryStore(), quiet)
		res := ledger.CheckAndReserve(ctx, uuid.New(), period, -1)

		assert.True(t, res.Allowed)
		assert.Equal(t, int64(-1), res.Remaining)
		assert.False(t, res.Degraded)
	})

	t.Run("under the limit", func(t *testing.T) {
		t.Parallel()

		store := quota.NewMemoryStore()
		accountID := uuid.New()
		for n := 0; n < 10; n++ {
			_, err := store.Increment(ctx, accountID, period)
			require.NoError(t, err)
		}

		ledger := quota.NewLedger(store, quiet)
		res := ledger.CheckAndReserve(ctx, accountID, period, 50)

		assert.True(t, res.Allowed)
		assert.Equal(t, int64(10), res.Used)
		assert.Equal(t, int64(40), res.Remaining)
		assert.Equal(t, period.ResetAt(), res.ResetAt)
	})

	t.Run("one below the limit, then exhausted", func(t *testing.T) {
		t.Parallel()

		store := quota.NewMemoryStore()
		accountID := uuid.New()
		for n := 0; n < 49; n++ {
			_, err := store.Increment(ctx, accountID, period)
			require.NoError(t, err)
		}

		ledger := quota.NewLedger(store, quiet)

		res := ledger.CheckAndReserve(ctx, accountID, period, 50)
		require.True(t, res.Allowed)
		assert.Equal(t, int64(49), res.Used)
		assert.Equal(t, int64(1), res.Remaining)

		ledger.Commit(ctx, accountID, period)

		res = ledger.CheckAndReserve(ctx, accountID, period, 50)
		assert.False(t, res.Allowed)
		assert.Equal(t, int64(50), res.Used)
		assert.Equal(t, int64(0), res.Remaining)
		assert.Equal(t, period.ResetAt(), res.ResetAt)
	})

	t.Run("store outage fails open", func(t *testing.T) {
		t.Parallel()

		ledger := quota.NewLedger(failingStore{}, quiet)
		res := ledger.CheckAndReserve(ctx, uuid.New(), period, 50)

		assert.True(t, res.Allowed, "a persistence outage must not deny requests")
		assert.True(t, res.Degraded)
	})

	t.Run("cache outage falls back to store", func(t *testing.T) {
		t.Parallel()

		store := quota.NewMemoryStore()
		accountID := uuid.New()
		for n := 0; n < 5; n++ {
			_, err := store.Increment(ctx, accountID, period)
			require.NoError(t, err)
		}

		ledger := quota.NewLedger(store, quota.WithCache(failingCache{}), quiet)
		res := ledger.CheckAndReserve(ctx, accountID, period, 50)

		assert.True(t, res.Allowed)
		assert.Equal(t, int64(5), res.Used, "cache failure must not lose the real count")
		assert.False(t, res.Degraded)
	})
}

func TestCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	period := quota.PeriodKey("2026-08")

	t.Run("increments and invalidates cache", func(t *testing.T) {
		t.Parallel()

		store := quota.NewMemoryStore()
		cache := newCountingCache()
		accountID := uuid.New()

		ledger := quota.NewLedger(store, quota.WithCache(cache), quiet)

		// Prime the cache via a read.
		res := ledger.CheckAndReserve(ctx, accountID, period, 50)
		require.True(t, res.Allowed)

		ledger.Commit(ctx, accountID, period)

		count, err := store.Get(ctx, accountID, period)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, 1, cache.invalidations, "commit must invalidate, not overwrite")

		// The post-commit read must see the committed count, not a stale one.
		res = ledger.CheckAndReserve(ctx, accountID, period, 50)
		assert.Equal(t, int64(1), res.Used)
	})

	t.Run("write failure is swallowed", func(t *testing.T) {
		t.Parallel()

		ledger := quota.NewLedger(failingStore{}, quiet)
		// Must not panic or block; the action already executed.
		ledger.Commit(ctx, uuid.New(), period)
	})

	t.Run("concurrent commits lose no updates", func(t *testing.T) {
		t.Parallel()

		store := quota.NewMemoryStore()
		accountID := uuid.New()
		ledger := quota.NewLedger(store, quiet)

		const commits = 200
		var wg sync.WaitGroup
		for n := 0; n < commits; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ledger.Commit(ctx, accountID, period)
			}()
		}
		wg.Wait()

		count, err := store.Get(ctx, accountID, period)
		require.NoError(t, err)
		assert.Equal(t, int64(commits), count)
	})
}

func TestUsage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	period := quota.PeriodKey("2026-08")

	t.Run("limited plan", func(t *testing.T) {
		t.Parallel()

		store := quota.NewMemoryStore()
		accountID := uuid.New()
		for n := 0; n < 7; n++ {
			_, err := store.Increment(ctx, accountID, period)
			require.NoError(t, err)
		}

		ledger := quota.NewLedger(store, quiet)
		used, remaining, err := ledger.Usage(ctx, accountID, period, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(7), used)
		assert.Equal(t, int64(43), remaining)
	})

	t.Run("unlimited plan", func(t *testing.T) {
		t.Parallel()

		ledger := quota.NewLedger(quota.NewMemoryStore(), quiet)
		used, remaining, err := ledger.Usage(ctx, uuid.New(), period, -1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), used)
		assert.Equal(t, int64(-1), remaining)
	})

	t.Run("store error propagates", func(t *testing.T) {
		t.Parallel()

		ledger := quota.NewLedger(failingStore{}, quiet)
		_, _, err := ledger.Usage(ctx, uuid.New(), period, 50)
		require.ErrorIs(t, err, quota.ErrStoreUnavailable)
	})
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	accountID := uuid.New()
	period := quota.PeriodKey("2026-08")

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		c := quota.NewMemoryCache(8, time.Minute)
		require.NoError(t, c.SetCount(ctx, accountID, period, 42))

		count, ok, err := c.GetCount(ctx, accountID, period)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(42), count)
	})

	t.Run("expired entry misses", func(t *testing.T) {
		t.Parallel()

		c := quota.NewMemoryCache(8, time.Nanosecond)
		require.NoError(t, c.SetCount(ctx, accountID, period, 42))
		time.Sleep(5 * time.Millisecond)

		_, ok, err := c.GetCount(ctx, accountID, period)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate removes entry", func(t *testing.T) {
		t.Parallel()

		c := quota.NewMemoryCache(8, time.Minute)
		require.NoError(t, c.SetCount(ctx, accountID, period, 42))
		require.NoError(t, c.Invalidate(ctx, accountID, period))

		_, ok, err := c.GetCount(ctx, accountID, period)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
