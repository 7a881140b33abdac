package capability

import "errors"

// Domain errors for registry construction and plan sources.
var (
	ErrFailedToLoadPlans        = errors.New("capability: failed to load plans")
	ErrNoPlansConfigured        = errors.New("capability: no plans configured")
	ErrInvalidPlanConfiguration = errors.New("capability: invalid plan configuration")
	ErrFallbackPlanNotFound     = errors.New("capability: fallback plan not registered")
	ErrPermissivePlanNotFound   = errors.New("capability: permissive plan not registered")
)
