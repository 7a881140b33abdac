// Package ratelimit enforces a short-window request cap per account,
// independent of the monthly quota ledger.
//
// The limiter is a fixed-window counter keyed by (account, window start)
// with a configurable window length, one minute by default. State lives in
// the cache layer and is deliberately ephemeral: losing it only loosens
// limiting for the remainder of a window, it can never lock an account out.
// For the same reason an unreachable store fails open with a logged warning
// instead of blocking all traffic.
package ratelimit
