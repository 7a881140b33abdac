// Package gate is the authorization entry point of the access-control core.
//
// Authorize combines the rollout selector, subscription resolver, capability
// registry, rate limiter and quota ledger into a single structured Decision:
// allowed, or denied with exactly one reason code and enough data (limit,
// requested value, reset time) for the caller to render a precise message.
// Checks run in a fixed order and short-circuit on the first denial; each
// action constraint is evaluated independently so a history-range denial is
// never conflated with an export or summary-budget denial.
//
// The flow is two-phase: Authorize before the gated action, Commit after it
// actually executed. Commit increments the quota counter atomically and
// appends a usage record through the Recorder; a recorder failure never
// rolls back the quota commit.
//
// Dependency failures never surface as denials. The resolver, ledger and
// limiter each fail open internally and mark the decision Degraded; only
// logic-level limits (quota exhausted, trial expired, constraint violations)
// deny, and those never fail open.
package gate
