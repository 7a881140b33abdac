package quota

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tenderwatch/accesskit/pkg/logger"
)

// Config holds ledger settings read from the process environment. Both
// values are tunable; the defaults match the production deployment.
type Config struct {
	// CacheTTL bounds how stale a cached count may be.
	CacheTTL time.Duration `env:"QUOTA_CACHE_TTL" envDefault:"30s"`
	// OpTimeout bounds every store and cache call.
	OpTimeout time.Duration `env:"QUOTA_OP_TIMEOUT" envDefault:"300ms"`
}

// Reservation is the outcome of a CheckAndReserve call.
type Reservation struct {
	Allowed bool
	Used    int64
	// Remaining is -1 for unlimited plans.
	Remaining int64
	ResetAt   time.Time
	// Degraded is set when the store was unreachable and the reservation was
	// allowed on the fail-open path rather than from a real count.
	Degraded bool
}

// Ledger enforces the monthly allowance for an account.
type Ledger struct {
	store   Store
	cache   Cache
	timeout time.Duration
	log     *slog.Logger
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithCache fronts store reads with the given cache.
func WithCache(cache Cache) LedgerOption {
	return func(l *Ledger) { l.cache = cache }
}

// WithOpTimeout overrides the per-call dependency timeout.
func WithOpTimeout(d time.Duration) LedgerOption {
	return func(l *Ledger) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger for degradation warnings.
func WithLogger(log *slog.Logger) LedgerOption {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLedger returns a Ledger over the given store.
func NewLedger(store Store, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		store:   store,
		timeout: 300 * time.Millisecond,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CheckAndReserve reports whether the account may perform one more metered
// action in the period. A negative limit means unlimited. Nothing is written
// here; the caller commits after the action actually executed.
//
// A store outage on this read path fails open: the reservation is allowed,
// flagged Degraded, and logged. Running temporarily unmetered is preferred
// over denying every request for the duration of an outage.
func (l *Ledger) CheckAndReserve(ctx context.Context, accountID uuid.UUID, period PeriodKey, limit int64) Reservation {
	resetAt := period.ResetAt()

	if limit < 0 {
		return Reservation{Allowed: true, Used: 0, Remaining: -1, ResetAt: resetAt}
	}

	used, err := l.readCount(ctx, accountID, period)
	if err != nil {
		l.log.WarnContext(ctx, "quota store unavailable, allowing request unmetered",
			logger.AccountID(accountID),
			logger.Period(period),
			logger.Error(err))
		return Reservation{Allowed: true, Used: 0, Remaining: limit, ResetAt: resetAt, Degraded: true}
	}

	remaining := max(limit-used, 0)
	return Reservation{
		Allowed:   used < limit,
		Used:      used,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// Commit records one executed action against the period counter. The
// increment happens atomically inside the store, and the cache entry is
// invalidated so the next read cannot serve the pre-commit count.
//
// The gated action has already run by the time Commit is called, so a store
// write failure is logged and swallowed rather than retried or surfaced.
func (l *Ledger) Commit(ctx context.Context, accountID uuid.UUID, period PeriodKey) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if _, err := l.store.Increment(ctx, accountID, period); err != nil {
		l.log.ErrorContext(ctx, "quota commit failed, usage undercounted",
			logger.AccountID(accountID),
			logger.Period(period),
			logger.Error(err))
		return
	}

	if l.cache != nil {
		if err := l.cache.Invalidate(ctx, accountID, period); err != nil {
			l.log.WarnContext(ctx, "quota cache invalidation failed",
				logger.AccountID(accountID),
				logger.Period(period),
				logger.Error(err))
		}
	}
}

// Usage returns the current used/remaining view for dashboards. Remaining is
// -1 for unlimited plans.
func (l *Ledger) Usage(ctx context.Context, accountID uuid.UUID, period PeriodKey, limit int64) (used, remaining int64, err error) {
	used, err = l.readCount(ctx, accountID, period)
	if err != nil {
		return 0, 0, err
	}
	if limit < 0 {
		return used, -1, nil
	}
	return used, max(limit-used, 0), nil
}

// readCount consults the cache first, falling back to the store on miss or
// cache outage. Cache errors never fail the read, only the store's do.
func (l *Ledger) readCount(ctx context.Context, accountID uuid.UUID, period PeriodKey) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if l.cache != nil {
		count, ok, err := l.cache.GetCount(ctx, accountID, period)
		if err != nil {
			l.log.WarnContext(ctx, "quota cache unavailable, reading store directly",
				logger.AccountID(accountID),
				logger.Error(err))
		} else if ok {
			return count, nil
		}
	}

	count, err := l.store.Get(ctx, accountID, period)
	if err != nil {
		return 0, err
	}

	if l.cache != nil {
		// Best effort: a failed backfill only costs the next read.
		if err := l.cache.SetCount(ctx, accountID, period, count); err != nil {
			l.log.WarnContext(ctx, "quota cache backfill failed",
				logger.AccountID(accountID),
				logger.Error(err))
		}
	}
	return count, nil
}
