package ratelimit

import "errors"

// Domain errors for rate limit storage backends.
var (
	ErrStoreUnavailable = errors.New("ratelimit: store unavailable")
	ErrInvalidWindow    = errors.New("ratelimit: window must be positive")
)
