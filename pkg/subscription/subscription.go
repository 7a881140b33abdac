package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Status is the effective subscription status derived at resolution time.
type Status string

const (
	StatusActive              Status = "active"
	StatusTrialExpired        Status = "trial_expired"
	StatusSubscriptionExpired Status = "subscription_expired"
	// StatusDegraded marks a state synthesized during a store outage. The
	// carried plan is the most permissive tier, per the fail-open policy.
	StatusDegraded Status = "degraded"
)

// Subscription is one persisted subscription record. Records are created by
// provisioning and billing events and are read-only to this core. An account
// may accumulate several records over time; the most recently created one
// determines the effective plan.
type Subscription struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	PlanID    string
	IsActive  bool
	// ExpiresAt is set for paid subscriptions, mutually exclusive with the
	// trial window fields.
	ExpiresAt      *time.Time
	TrialStartedAt *time.Time
	TrialExpiresAt *time.Time
	CreatedAt      time.Time
}

// IsTrial reports whether the record represents a trial subscription.
func (s *Subscription) IsTrial() bool {
	return s.TrialExpiresAt != nil
}

// TrialExpiredAt reports whether the trial window has ended at the given time.
func (s *Subscription) TrialExpiredAt(now time.Time) bool {
	return s.TrialExpiresAt != nil && now.After(*s.TrialExpiresAt)
}

// PaidExpiredAt reports whether a paid subscription has lapsed at the given time.
func (s *Subscription) PaidExpiredAt(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// StatusAt derives the effective status of this record at the given time.
func (s *Subscription) StatusAt(now time.Time) Status {
	if s.TrialExpiredAt(now) {
		return StatusTrialExpired
	}
	if s.PaidExpiredAt(now) {
		return StatusSubscriptionExpired
	}
	return StatusActive
}

// TrialDaysRemainingAt returns whole days left in the trial at the given
// time, rounding partial days up. Zero when not trialing or already expired.
func (s *Subscription) TrialDaysRemainingAt(now time.Time) int {
	if s.TrialExpiresAt == nil {
		return 0
	}
	remaining := s.TrialExpiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Hours()/24 + 0.5)
}
