package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tenderwatch/accesskit/pkg/capability"
	"github.com/tenderwatch/accesskit/pkg/logger"
)

// Config holds resolver settings read from the process environment.
type Config struct {
	// QueryTimeout bounds every store lookup. A slow store is treated the
	// same as an unreachable one.
	QueryTimeout time.Duration `env:"SUBSCRIPTION_QUERY_TIMEOUT" envDefault:"300ms"`
}

// State is the resolved view of an account's subscription at a point in time.
type State struct {
	AccountID uuid.UUID
	Status    Status
	Plan      capability.Plan
	// Record is the winning subscription record. Nil when the account has no
	// records or the state is degraded.
	Record *Subscription
	// Degraded is set when the store was unavailable and Plan is the most
	// permissive default rather than the account's real plan.
	Degraded bool
}

// Resolver derives an account's effective plan state.
type Resolver struct {
	store    Store
	registry *capability.Registry
	timeout  time.Duration
	log      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithQueryTimeout overrides the store lookup timeout.
func WithQueryTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger for degradation warnings.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver returns a Resolver over the given store and plan registry.
func NewResolver(store Store, registry *capability.Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:    store,
		registry: registry,
		timeout:  300 * time.Millisecond,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveState loads the account's subscription records and derives the
// effective plan state at the given time.
//
// A store failure or timeout never propagates: the resolver returns a
// degraded state carrying the most permissive plan so that a persistence
// outage cannot lock out paying users. An account with no records at all
// gets the most restrictive plan instead; absence of data is a
// fail-closed condition, absence of the dependency is fail-open.
func (r *Resolver) ResolveState(ctx context.Context, accountID uuid.UUID, now time.Time) State {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	records, err := r.store.List(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return State{
				AccountID: accountID,
				Status:    StatusActive,
				Plan:      r.registry.Fallback(),
			}
		}
		r.log.WarnContext(ctx, "subscription store unavailable, resolving degraded state",
			logger.AccountID(accountID),
			logger.Error(err))
		return State{
			AccountID: accountID,
			Status:    StatusDegraded,
			Plan:      r.registry.Permissive(),
			Degraded:  true,
		}
	}

	winner := pickWinner(records)
	if winner == nil {
		return State{
			AccountID: accountID,
			Status:    StatusActive,
			Plan:      r.registry.Fallback(),
		}
	}

	return State{
		AccountID: accountID,
		Status:    winner.StatusAt(now),
		Plan:      r.registry.Resolve(winner.PlanID),
		Record:    winner,
	}
}

// pickWinner selects the effective record: the most recently created active
// one, or the most recently created overall when none is flagged active.
// Records are expected newest first, but ordering is not assumed.
func pickWinner(records []Subscription) *Subscription {
	var newest, newestActive *Subscription
	for i := range records {
		rec := &records[i]
		if newest == nil || rec.CreatedAt.After(newest.CreatedAt) {
			newest = rec
		}
		if rec.IsActive && (newestActive == nil || rec.CreatedAt.After(newestActive.CreatedAt)) {
			newestActive = rec
		}
	}
	if newestActive != nil {
		return newestActive
	}
	return newest
}
