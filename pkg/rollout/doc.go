// Package rollout buckets accounts into an enabled/disabled cohort for
// staged feature enablement.
//
// Bucketing is deterministic: the account identifier is hashed with FNV-1a
// to a stable value in [0, 100) and compared against the configured
// percentage. Any process computes the same bucket for the same account, so
// enforcement does not flicker across instances or restarts and no shared
// state is needed.
package rollout
