package limits

import (
	"fmt"
	"log/slog"

	"github.com/salonsuite/planguard/pkg/logger"
	"github.com/salonsuite/planguard/pkg/plans"
)

// PlanCatalog is the read side of the plan catalog the validator needs.
type PlanCatalog interface {
	Plan(id string) (plans.Plan, bool)
}

// Validator gates creation of countable resources against plan caps.
// It performs no I/O; callers supply the current count.
type Validator struct {
	catalog PlanCatalog
	logger  *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger for unknown plan warnings.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// NewValidator creates a validator over catalog.
func NewValidator(catalog PlanCatalog, opts ...Option) *Validator {
	v := &Validator{catalog: catalog, logger: slog.Default()}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With(logger.Component("limits"))
	return v
}

// Validate reports whether one more instance of res fits under the plan cap
// given current existing instances.
//
// A missing or uncapped limit always allows, unlike features which default
// to not entitled. An unknown plan allows with a warning. Malformed input is
// a caller bug and returns an error.
func (v *Validator) Validate(planID string, res Resource, current int64) (Result, error) {
	switch {
	case res == "":
		return Result{}, ErrInvalidResource
	case planID == "":
		return Result{}, ErrInvalidPlanID
	case current < 0:
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidCount, current)
	}

	r := Result{Resource: res, PlanID: planID, Current: current}

	limit, known := v.limit(planID, res)
	if !known {
		v.logger.Warn("unknown plan, allowing resource creation",
			logger.PlanID(planID), logger.Resource(string(res)))
		r.Fallback = true
	}

	if !known || limit == plans.Unlimited {
		r.Allowed = true
		r.Limit = plans.Unlimited
		r.Remaining = plans.Unlimited
		return r, nil
	}

	r.Limit = limit
	r.Remaining = max(0, limit-current)
	r.Allowed = current < limit
	return r, nil
}

// limit returns the cap, Unlimited when the plan leaves res unconfigured,
// and known=false when the plan does not exist.
func (v *Validator) limit(planID string, res Resource) (int64, bool) {
	p, ok := v.catalog.Plan(planID)
	if !ok {
		return 0, false
	}
	limit, ok := p.Limit(res.key())
	if !ok {
		return plans.Unlimited, true
	}
	return limit, true
}
