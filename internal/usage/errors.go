package usage

import "errors"

// ErrLimitReached indicates the principal exhausted the daily quota.
var ErrLimitReached = errors.New("limit reached")

// ErrMissingPrincipal is returned when no principal id is supplied.
var ErrMissingPrincipal = errors.New("principal id is required")
