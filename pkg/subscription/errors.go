package subscription

import "errors"

// Domain errors for subscription resolution.
var (
	ErrSubscriptionNotFound = errors.New("subscription: not found")
	ErrStoreUnavailable     = errors.New("subscription: store unavailable")
)
