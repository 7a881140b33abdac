// Package capability maps plan identifiers to the capability records that
// drive access-control decisions: history depth, export permission, monthly
// and per-minute request allowances, and the AI summary token budget.
//
// The registry is an immutable value built once at process start from a
// Source (in-memory map or YAML file) and shared by reference afterwards.
// Resolution is a pure, total lookup: an unknown plan identifier never
// produces an error, it resolves to the registered fallback plan (the most
// restrictive tier) and emits a diagnostic log entry, since an unknown plan
// is a data-integrity problem upstream and not something the request should
// fail on.
//
// Basic usage:
//
//	plans := map[string]capability.Plan{
//	    "free": {
//	        ID:                   "free",
//	        MaxHistoryDays:       30,
//	        MaxRequestsPerMonth:  50,
//	        MaxRequestsPerMinute: 10,
//	        MaxSummaryTokens:     256,
//	        Priority:             capability.PriorityLow,
//	    },
//	    "business": {
//	        ID:                   "business",
//	        MaxHistoryDays:       365,
//	        AllowExport:          true,
//	        MaxRequestsPerMonth:  capability.Unlimited,
//	        MaxRequestsPerMinute: 60,
//	        MaxSummaryTokens:     2048,
//	        Priority:             capability.PriorityHigh,
//	    },
//	}
//
//	reg, err := capability.NewRegistry(ctx, capability.NewInMemSource(plans),
//	    capability.WithFallbackPlan("free"),
//	    capability.WithPermissivePlan("business"),
//	)
//
//	plan := reg.Resolve("business") // never fails
package capability
