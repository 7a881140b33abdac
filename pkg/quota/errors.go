package quota

import "errors"

// Domain errors for quota storage backends.
var (
	ErrStoreUnavailable = errors.New("quota: store unavailable")
	ErrCacheUnavailable = errors.New("quota: cache unavailable")
)
