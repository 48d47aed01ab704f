package usage

import "errors"

var (
	// ErrInvalidTenantID is returned when a counter is requested for an empty tenant ID.
	ErrInvalidTenantID = errors.New("usage: invalid tenant id")

	// ErrStoreUnavailable wraps failures of the backing store.
	ErrStoreUnavailable = errors.New("usage: store unavailable")

	// ErrInvalidPeriod is returned when a period key cannot be parsed.
	ErrInvalidPeriod = errors.New("usage: invalid period")
)
