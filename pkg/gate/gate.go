package gate

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tenderwatch/accesskit/pkg/logger"
	"github.com/tenderwatch/accesskit/pkg/quota"
	"github.com/tenderwatch/accesskit/pkg/ratelimit"
	"github.com/tenderwatch/accesskit/pkg/rollout"
	"github.com/tenderwatch/accesskit/pkg/subscription"
)

// Gate authorizes metered search requests. It holds no mutable state of its
// own; every field is read-only after construction, so concurrent Authorize
// calls need no synchronization.
type Gate struct {
	selector *rollout.Selector
	resolver *subscription.Resolver
	ledger   *quota.Ledger
	limiter  *ratelimit.FixedWindow
	recorder Recorder
	hints    HintProvider
	log      *slog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithRecorder wires the usage-history collaborator.
func WithRecorder(r Recorder) Option {
	return func(g *Gate) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithHintProvider wires the upgrade-hint collaborator.
func WithHintProvider(h HintProvider) Option {
	return func(g *Gate) {
		if h != nil {
			g.hints = h
		}
	}
}

// WithLogger sets the gate's logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}

// New assembles a Gate from its components.
func New(selector *rollout.Selector, resolver *subscription.Resolver, ledger *quota.Ledger, limiter *ratelimit.FixedWindow, opts ...Option) *Gate {
	g := &Gate{
		selector: selector,
		resolver: resolver,
		ledger:   ledger,
		limiter:  limiter,
		recorder: NopRecorder{},
		hints:    nopHints{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize decides whether the account may perform the action at the given
// time. Checks run in order: subscription validity, action constraints, rate
// window, monthly quota; the first denial wins and carries its own reason
// code only. On an allowed decision the caller executes the action and then
// passes the decision to Commit.
func (g *Gate) Authorize(ctx context.Context, accountID uuid.UUID, action Action, now time.Time) Decision {
	period := quota.PeriodOf(now)
	enforced := g.selector.IsEnabledFor(accountID)

	state := g.resolver.ResolveState(ctx, accountID, now)
	decision := Decision{
		Allowed:        true,
		Plan:           state.Plan,
		Period:         period,
		QuotaRemaining: -1,
		Degraded:       state.Degraded,
	}

	if !enforced {
		// Outside the rollout cohort: capabilities still resolve so the
		// caller can render the plan, but metering is not enforced.
		return decision
	}
	decision.Enforced = true

	switch state.Status {
	case subscription.StatusTrialExpired:
		return g.withHint(decision.denied(ReasonTrialExpired), state.Plan.ID)
	case subscription.StatusSubscriptionExpired:
		return g.withHint(decision.denied(ReasonSubscriptionExpired), state.Plan.ID)
	}

	// Action constraints are logic-level checks against the resolved plan.
	// Each is independent of the others and of quota state.
	if !state.Plan.AllowsHistoryRange(action.HistoryDays) {
		decision.Limit = int64(state.Plan.MaxHistoryDays)
		decision.Requested = int64(action.HistoryDays)
		return g.withHint(decision.denied(ReasonHistoryRangeExceeded), state.Plan.ID)
	}
	if action.Export && !state.Plan.AllowExport {
		return g.withHint(decision.denied(ReasonExportNotPermitted), state.Plan.ID)
	}
	if !state.Plan.AllowsSummaryTokens(action.SummaryTokens) {
		decision.Limit = int64(state.Plan.MaxSummaryTokens)
		decision.Requested = int64(action.SummaryTokens)
		return g.withHint(decision.denied(ReasonSummaryBudgetExceeded), state.Plan.ID)
	}

	rate := g.limiter.CheckWindow(ctx, accountID, state.Plan.MaxRequestsPerMinute, now)
	decision.Degraded = decision.Degraded || rate.Degraded
	if !rate.Allowed {
		decision.RetryAfter = rate.RetryAfterAt(now)
		return g.withHint(decision.denied(ReasonRateLimited), state.Plan.ID)
	}

	reservation := g.ledger.CheckAndReserve(ctx, accountID, period, state.Plan.MaxRequestsPerMonth)
	decision.Degraded = decision.Degraded || reservation.Degraded
	decision.QuotaUsed = reservation.Used
	decision.QuotaRemaining = reservation.Remaining
	decision.QuotaResetAt = reservation.ResetAt
	if !reservation.Allowed {
		decision.Limit = state.Plan.MaxRequestsPerMonth
		return g.withHint(decision.denied(ReasonQuotaExhausted), state.Plan.ID)
	}

	return decision
}

// Commit records one executed action: the quota counter is incremented
// atomically and a usage session is appended. Call it only after the gated
// action actually succeeded. A recorder failure is logged and never rolls
// back the quota commit.
func (g *Gate) Commit(ctx context.Context, accountID uuid.UUID, decision Decision, action Action, now time.Time) {
	if decision.Enforced {
		g.ledger.Commit(ctx, accountID, decision.Period)
	}

	session := Session{
		AccountID:     accountID,
		PlanID:        decision.Plan.ID,
		HistoryDays:   action.HistoryDays,
		Export:        action.Export,
		SummaryTokens: action.SummaryTokens,
		OccurredAt:    now,
	}
	if err := g.recorder.Record(ctx, session); err != nil {
		g.log.WarnContext(ctx, "usage session recording failed",
			logger.AccountID(accountID),
			logger.Error(err))
	}
}

// withHint attaches the upgrade hint for a denial, when a provider is wired.
func (g *Gate) withHint(d Decision, planID string) Decision {
	d.UpgradeHint = g.hints.UpgradeHint(planID, d.Reason)
	return d
}
