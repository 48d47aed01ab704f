package limits

import "errors"

var (
	// Caller errors, returned loudly.
	ErrInvalidResource = errors.New("limits.errors.invalid_resource")
	ErrInvalidPlanID   = errors.New("limits.errors.invalid_plan_id")
	ErrInvalidCount    = errors.New("limits.errors.invalid_count")

	ErrLimitExceeded        = errors.New("limits.errors.limit_exceeded")
	ErrNoCounterRegistered  = errors.New("limits.errors.no_counter_registered")
	ErrDowngradeNotPossible = errors.New("limits.errors.downgrade_not_possible")

	ErrTrialExpired      = errors.New("limits.errors.trial_expired")
	ErrTrialNotAvailable = errors.New("limits.errors.trial_not_available")

	ErrFailedToCountResourceUsage = errors.New("limits.errors.failed_to_count_resource_usage")
)
