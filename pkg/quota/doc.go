// Package quota tracks per-account usage against a monthly allowance.
//
// The ledger runs a two-phase flow: CheckAndReserve before the gated action
// executes, Commit only after it succeeded, so a failed downstream action
// never consumes quota. The commit is a single atomic upsert at the storage
// layer (INSERT .. ON CONFLICT .. count = count + 1); the count is never
// computed client-side from a prior read, which removes the lost-update race
// under concurrent requests from the same account without any in-process
// locking.
//
// An optional cache fronts the read path with a short TTL. Every commit
// invalidates (deletes, not overwrites) the account's cache entry, and an
// unreachable cache transparently falls back to direct store reads. A store
// outage on the read path fails open: the request is allowed and the
// degradation is logged. A commit write failure after the action already ran
// is logged and swallowed; a silent undercount is preferred over blocking
// the user-visible response.
package quota
