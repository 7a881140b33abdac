package gate

import (
	"time"

	"github.com/tenderwatch/accesskit/pkg/capability"
	"github.com/tenderwatch/accesskit/pkg/quota"
)

// Reason identifies why a request was denied. Empty on allowed decisions.
type Reason string

const (
	ReasonQuotaExhausted        Reason = "quota_exhausted"
	ReasonRateLimited           Reason = "rate_limited"
	ReasonTrialExpired          Reason = "trial_expired"
	ReasonSubscriptionExpired   Reason = "subscription_expired"
	ReasonHistoryRangeExceeded  Reason = "history_range_exceeded"
	ReasonExportNotPermitted    Reason = "export_not_permitted"
	ReasonSummaryBudgetExceeded Reason = "summary_budget_exceeded"
)

// Action describes the request being authorized, in capability terms only.
// What the search actually returns is none of this package's business.
type Action struct {
	// HistoryDays is the length of the requested date range.
	HistoryDays int
	// Export is set when the caller wants to export results.
	Export bool
	// SummaryTokens is the requested AI summary budget. Zero means no
	// summary.
	SummaryTokens int
}

// Decision is the structured outcome of an Authorize call. The shape is the
// same on every code path; denied decisions differ only in Reason and the
// constraint fields.
type Decision struct {
	Allowed bool
	Reason  Reason

	// Plan is the resolved capability record the decision was made against.
	Plan capability.Plan

	// Enforced is false when the account is outside the rollout cohort and
	// metering checks were skipped.
	Enforced bool

	// Period is the quota period the decision applies to; pass it back to
	// Commit after the action executed.
	Period quota.PeriodKey

	QuotaUsed      int64
	QuotaRemaining int64 // -1 for unlimited plans
	QuotaResetAt   time.Time

	// RetryAfter is set on rate-limit denials.
	RetryAfter time.Duration

	// Limit and Requested carry the violated constraint on capability
	// denials (history range, summary budget).
	Limit     int64
	Requested int64

	// UpgradeHint names the next plan tier that would satisfy the violated
	// constraint. Supplied by the HintProvider, empty without one.
	UpgradeHint string

	// Degraded is set when any dependency was unavailable and the decision
	// was made on a fail-open path.
	Degraded bool
}

// denied returns a copy of the decision marked as denied for the reason.
func (d Decision) denied(reason Reason) Decision {
	d.Allowed = false
	d.Reason = reason
	return d
}
