package ratelimit

import (
	"context"
	"time"
)

// Result contains the outcome of a window check.
type Result struct {
	// Allowed indicates whether the request fits the window allowance.
	Allowed bool

	// Limit is the maximum number of requests allowed per window.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window ends and the counter resets.
	ResetAt time.Time

	// Degraded is set when the store was unreachable and the request was
	// allowed on the fail-open path.
	Degraded bool
}

// RetryAfter returns how long to wait before the next request is allowed.
// Zero when the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// RetryAfterAt is RetryAfter measured from an explicit instant, for callers
// that carry an injected clock.
func (r *Result) RetryAfterAt(now time.Time) time.Duration {
	if r.Allowed {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Store defines the counter backend. Implementations must make
// IncrementAndGet atomic per key.
type Store interface {
	// IncrementAndGet adds one to the counter stored at key and returns the
	// new value. The entry expires after ttl.
	IncrementAndGet(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
