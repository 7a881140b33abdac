package capability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tenderwatch/accesskit/pkg/logger"
)

// Registry resolves plan identifiers to capability records.
//
// The plan map is treated as immutable after construction, which is what
// makes concurrent Resolve calls safe without locking.
type Registry struct {
	plans        map[string]Plan
	fallbackID   string
	permissiveID string
	log          *slog.Logger
}

// RegistryOption configures a Registry during construction.
type RegistryOption func(*Registry)

// WithFallbackPlan sets the plan returned for unknown identifiers. It should
// name the most restrictive tier.
func WithFallbackPlan(planID string) RegistryOption {
	return func(r *Registry) { r.fallbackID = planID }
}

// WithPermissivePlan sets the plan handed out on dependency outages. It
// should name the least restrictive tier.
func WithPermissivePlan(planID string) RegistryOption {
	return func(r *Registry) { r.permissiveID = planID }
}

// WithLogger sets the logger used for unknown-plan diagnostics.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry loads plans from src and validates the configuration. Both the
// fallback and permissive plan identifiers must resolve to a loaded plan.
func NewRegistry(ctx context.Context, src Source, opts ...RegistryOption) (*Registry, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if len(plans) == 0 {
		return nil, ErrNoPlansConfigured
	}

	r := &Registry{
		plans: plans,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := validatePlans(plans); err != nil {
		return nil, err
	}
	if _, ok := plans[r.fallbackID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrFallbackPlanNotFound, r.fallbackID)
	}
	if r.permissiveID == "" {
		r.permissiveID = r.fallbackID
	}
	if _, ok := plans[r.permissiveID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrPermissivePlanNotFound, r.permissiveID)
	}

	return r, nil
}

// Resolve returns the capability record for planID. Unknown identifiers
// resolve to the fallback plan; the mismatch is logged because it signals a
// subscription record referencing a tier the process was not configured with.
func (r *Registry) Resolve(planID string) Plan {
	if plan, ok := r.plans[planID]; ok {
		return plan
	}
	r.log.Warn("unknown plan id, falling back to most restrictive plan",
		logger.PlanID(planID),
		slog.String("fallback_plan_id", r.fallbackID))
	return r.plans[r.fallbackID]
}

// Fallback returns the most restrictive registered plan.
func (r *Registry) Fallback() Plan {
	return r.plans[r.fallbackID]
}

// Permissive returns the plan used when subscription state cannot be loaded.
func (r *Registry) Permissive() Plan {
	return r.plans[r.permissiveID]
}

// Known reports whether planID has a registry entry.
func (r *Registry) Known(planID string) bool {
	_, ok := r.plans[planID]
	return ok
}

// validatePlans rejects configurations that would let a misconfigured tier
// behave as unlimited by accident.
func validatePlans(plans map[string]Plan) error {
	for id, plan := range plans {
		if plan.ID != id {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan key %q does not match plan id %q", id, plan.ID))
		}
		if plan.MaxHistoryDays < 0 {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has negative max history days: %d", id, plan.MaxHistoryDays))
		}
		if plan.MaxRequestsPerMonth < Unlimited {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has invalid monthly allowance: %d", id, plan.MaxRequestsPerMonth))
		}
		if plan.MaxRequestsPerMinute < 0 {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has negative per-minute allowance: %d", id, plan.MaxRequestsPerMinute))
		}
		if plan.MaxSummaryTokens < 0 {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has negative summary token budget: %d", id, plan.MaxSummaryTokens))
		}
		if plan.TrialDays < 0 {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has negative trial days: %d", id, plan.TrialDays))
		}
		if plan.Priority != "" && !plan.Priority.valid() {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has unknown priority %q", id, plan.Priority))
		}
	}
	return nil
}
