// Package subscription resolves an account's active plan and its temporal
// validity (trial window or paid expiry).
//
// The resolver reads subscription records from a Store, picks the most
// recently created active record, and derives an effective status: active,
// trial expired, or subscription expired. Billing and upgrade events live
// outside this core; they simply create new records, and the newest one
// wins.
//
// Failure semantics are deliberate and asymmetric: if the store is
// unreachable or times out, the resolver does not propagate the error. It
// returns a degraded state carrying the most permissive plan and logs a
// warning, so a persistence outage degrades metering instead of locking out
// paying users. Expired trials and subscriptions, by contrast, are always a
// hard deny downstream.
package subscription
