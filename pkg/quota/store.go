package quota

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence contract for period counters.
type Store interface {
	// Get returns the current count for (account, period). Accounts with no
	// counter yet report zero, not an error.
	Get(ctx context.Context, accountID uuid.UUID, period PeriodKey) (int64, error)

	// Increment atomically adds one to the counter for (account, period),
	// creating it at one if absent, and returns the new count. The increment
	// must happen inside the storage engine; implementations must not read
	// the count and write count+1 from the client side.
	Increment(ctx context.Context, accountID uuid.UUID, period PeriodKey) (int64, error)
}

// Cache is an optional read-through layer in front of Store. Losing it only
// costs extra store reads.
type Cache interface {
	// GetCount returns the cached count and whether it was present.
	GetCount(ctx context.Context, accountID uuid.UUID, period PeriodKey) (int64, bool, error)

	// SetCount stores the count with the cache's TTL.
	SetCount(ctx context.Context, accountID uuid.UUID, period PeriodKey, count int64) error

	// Invalidate removes the entry so the next read hits the store. Commit
	// calls this rather than overwriting, to avoid racing a concurrent
	// increment with a stale value.
	Invalidate(ctx context.Context, accountID uuid.UUID, period PeriodKey) error
}
