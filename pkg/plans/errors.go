package plans

import "errors"

var (
	ErrFailedToLoadPlans        = errors.New("plans.errors.failed_to_load_plans")
	ErrInvalidPlanConfiguration = errors.New("plans.errors.invalid_plan_configuration")
	ErrPlanNotFound             = errors.New("plans.errors.plan_not_found")
	ErrNoPlans                  = errors.New("plans.errors.no_plans")
)
