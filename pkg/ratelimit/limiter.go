package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tenderwatch/accesskit/pkg/logger"
)

// Config holds limiter settings read from the process environment. The
// window length is tunable; one minute is the deployment default, not a
// contract.
type Config struct {
	Window    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	OpTimeout time.Duration `env:"RATE_LIMIT_OP_TIMEOUT" envDefault:"200ms"`
}

// FixedWindow is a fixed-window rate limiter keyed by account and window
// start. Concurrency safety is delegated to the store's atomic increment;
// the limiter itself holds no mutable state.
type FixedWindow struct {
	store   Store
	window  time.Duration
	timeout time.Duration
	log     *slog.Logger
}

// Option configures a FixedWindow.
type Option func(*FixedWindow)

// WithOpTimeout overrides the per-call store timeout.
func WithOpTimeout(d time.Duration) Option {
	return func(fw *FixedWindow) {
		if d > 0 {
			fw.timeout = d
		}
	}
}

// WithLogger sets the logger for fail-open warnings.
func WithLogger(log *slog.Logger) Option {
	return func(fw *FixedWindow) {
		if log != nil {
			fw.log = log
		}
	}
}

// NewFixedWindow returns a limiter with the given window length.
func NewFixedWindow(store Store, window time.Duration, opts ...Option) (*FixedWindow, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	fw := &FixedWindow{
		store:   store,
		window:  window,
		timeout: 200 * time.Millisecond,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

// CheckWindow counts the request against the account's current window and
// reports whether it fits the limit. A non-positive limit disables limiting
// for the account. The store outage path fails open: under-enforcing for
// part of a window is harmless, a limiter-induced outage is not.
func (fw *FixedWindow) CheckWindow(ctx context.Context, accountID uuid.UUID, limit int, now time.Time) Result {
	windowStart := now.Truncate(fw.window)
	resetAt := windowStart.Add(fw.window)

	if limit <= 0 {
		return Result{Allowed: true, Limit: limit, Remaining: 0, ResetAt: resetAt}
	}

	ctx, cancel := context.WithTimeout(ctx, fw.timeout)
	defer cancel()

	key := windowKey(accountID, windowStart)
	count, err := fw.store.IncrementAndGet(ctx, key, fw.window)
	if err != nil {
		fw.log.WarnContext(ctx, "rate limit store unavailable, allowing request",
			logger.AccountID(accountID),
			logger.Error(err))
		return Result{Allowed: true, Limit: limit, Remaining: limit, ResetAt: resetAt, Degraded: true}
	}

	return Result{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: max(limit-int(count), 0),
		ResetAt:   resetAt,
	}
}

// Window returns the configured window length.
func (fw *FixedWindow) Window() time.Duration {
	return fw.window
}

// windowKey builds the counter key for an account's current window.
func windowKey(accountID uuid.UUID, windowStart time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", accountID, windowStart.Unix())
}
