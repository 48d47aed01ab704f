package limits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonsuite/planguard/pkg/plans"
	"github.com/salonsuite/planguard/pkg/tenant"
)

// Guard combines the Validator with registered counters so handlers can
// check a tenant directly from its request context.
type Guard struct {
	validator *Validator
	catalog   PlanCatalog
	counters  CounterRegistry
}

// NewGuard creates a guard. Counters must be fully registered beforehand.
func NewGuard(catalog PlanCatalog, counters CounterRegistry, opts ...Option) *Guard {
	if counters == nil {
		counters = NewRegistry()
	}
	return &Guard{
		validator: NewValidator(catalog, opts...),
		catalog:   catalog,
		counters:  counters,
	}
}

// Validator returns the underlying validator.
func (g *Guard) Validator() *Validator {
	return g.validator
}

// CanCreate checks whether the tenant may create one more res.
// Returns ErrLimitExceeded with the filled Result when the cap is reached.
// Unlimited tenants and uncapped resources are allowed without counting.
func (g *Guard) CanCreate(ctx context.Context, tc tenant.Context, res Resource) (Result, error) {
	if tc.Unlimited {
		return Result{
			Allowed:   true,
			Resource:  res,
			PlanID:    tc.PlanID,
			Limit:     plans.Unlimited,
			Remaining: plans.Unlimited,
		}, nil
	}

	if limit, known := g.validator.limit(tc.PlanID, res); !known || limit == plans.Unlimited {
		return g.validator.Validate(tc.PlanID, res, 0)
	}

	current, err := g.counters.Count(ctx, tc.TenantID, res)
	if err != nil {
		return Result{Resource: res, PlanID: tc.PlanID}, err
	}

	r, err := g.validator.Validate(tc.PlanID, res, current)
	if err != nil {
		return r, err
	}
	if !r.Allowed {
		return r, fmt.Errorf("%w: %s %d/%d on plan %s", ErrLimitExceeded, res, r.Current, r.Limit, r.PlanID)
	}
	return r, nil
}

// CanDowngrade checks that current usage fits every cap of the target plan.
// Resources without a registered counter cannot be verified and are skipped.
func (g *Guard) CanDowngrade(ctx context.Context, tc tenant.Context, targetPlanID string) error {
	target, ok := g.catalog.Plan(targetPlanID)
	if !ok {
		return fmt.Errorf("%w: %q", plans.ErrPlanNotFound, targetPlanID)
	}
	current, ok := g.catalog.Plan(tc.PlanID)
	if !ok {
		return fmt.Errorf("%w: %q", plans.ErrPlanNotFound, tc.PlanID)
	}

	var errs []error
	for key, targetLimit := range target.Limits {
		if targetLimit == plans.Unlimited {
			continue
		}

		currentLimit, has := current.Limit(key)
		if has && currentLimit != plans.Unlimited && currentLimit <= targetLimit {
			continue
		}

		res := Resource(key)
		if _, registered := g.counters[res]; !registered {
			continue
		}

		used, err := g.counters.Count(ctx, tc.TenantID, res)
		if err != nil {
			return err
		}
		if used > targetLimit {
			errs = append(errs, fmt.Errorf("%s: %d in use, %s allows %d", res, used, targetPlanID, targetLimit))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrDowngradeNotPossible}, errs...)...)
	}
	return nil
}

// Usage returns current usage and cap for every registered resource.
// Counter failures leave Current at zero.
func (g *Guard) Usage(ctx context.Context, tc tenant.Context) (map[Resource]UsageInfo, error) {
	p, ok := g.catalog.Plan(tc.PlanID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", plans.ErrPlanNotFound, tc.PlanID)
	}

	out := make(map[Resource]UsageInfo, len(g.counters))
	for res := range g.counters {
		limit, ok := p.Limit(res.key())
		if !ok || tc.Unlimited {
			limit = plans.Unlimited
		}
		info := UsageInfo{Limit: limit}
		if n, err := g.counters.Count(ctx, tc.TenantID, res); err == nil {
			info.Current = n
		}
		out[res] = info
	}
	return out, nil
}

// HasFeature reports whether the tenant's plan includes f.
// Unknown plans are not entitled.
func (g *Guard) HasFeature(tc tenant.Context, f plans.Feature) bool {
	if tc.Unlimited {
		return true
	}
	p, ok := g.catalog.Plan(tc.PlanID)
	return ok && p.HasFeature(f)
}

// CheckTrial reports whether a trial started at startedAt is still running at now.
func (g *Guard) CheckTrial(tc tenant.Context, startedAt, now time.Time) error {
	p, ok := g.catalog.Plan(tc.PlanID)
	if !ok {
		return fmt.Errorf("%w: %q", plans.ErrPlanNotFound, tc.PlanID)
	}
	if p.TrialDays <= 0 {
		return ErrTrialNotAvailable
	}
	if !p.IsTrialActiveAt(startedAt, now) {
		return ErrTrialExpired
	}
	return nil
}
