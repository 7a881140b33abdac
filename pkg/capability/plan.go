package capability

// Unlimited marks an allowance with no cap (-1 chosen for SQL compatibility).
const Unlimited int64 = -1

// Priority expresses how a plan's requests should be scheduled relative to
// other tiers by downstream workers.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// valid reports whether p is one of the defined priority levels.
func (p Priority) valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Plan is the capability record attached to a subscription tier. Values are
// immutable after registry construction.
type Plan struct {
	ID                   string   `yaml:"id"`
	Name                 string   `yaml:"name"`
	MaxHistoryDays       int      `yaml:"max_history_days"`
	AllowExport          bool     `yaml:"allow_export"`
	MaxRequestsPerMonth  int64    `yaml:"max_requests_per_month"`
	MaxRequestsPerMinute int      `yaml:"max_requests_per_minute"`
	MaxSummaryTokens     int      `yaml:"max_summary_tokens"`
	Priority             Priority `yaml:"priority"`
	TrialDays            int      `yaml:"trial_days"`
}

// UnlimitedMonthly reports whether the plan has no monthly request cap.
func (p Plan) UnlimitedMonthly() bool {
	return p.MaxRequestsPerMonth == Unlimited
}

// AllowsHistoryRange reports whether a requested history range fits the plan.
func (p Plan) AllowsHistoryRange(days int) bool {
	return days <= p.MaxHistoryDays
}

// AllowsSummaryTokens reports whether a requested summary budget fits the plan.
func (p Plan) AllowsSummaryTokens(tokens int) bool {
	return tokens <= p.MaxSummaryTokens
}
