package ratelimiter

import "errors"

var (
	// ErrNoTenant is returned by admin operations called without a tenant id.
	ErrNoTenant = errors.New("ratelimiter: tenant id is required")

	// ErrResetFailed wraps the store error of a failed admin reset.
	ErrResetFailed = errors.New("ratelimiter: usage reset failed")
)
