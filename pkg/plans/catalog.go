package plans

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
)

var planIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Catalog is a read-only registry of plans.
// It is safe for concurrent use; nothing mutates it after NewCatalog returns.
type Catalog struct {
	plans  map[string]Plan
	ranked []string // plan IDs ordered by rank ascending
}

// NewCatalog loads plans from src and validates them.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	loaded, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if len(loaded) == 0 {
		return nil, ErrNoPlans
	}
	if err := validatePlans(loaded); err != nil {
		return nil, err
	}

	c := &Catalog{
		plans:  make(map[string]Plan, len(loaded)),
		ranked: make([]string, 0, len(loaded)),
	}
	for id, p := range loaded {
		c.plans[id] = p.clone()
		c.ranked = append(c.ranked, id)
	}
	slices.SortFunc(c.ranked, func(a, b string) int {
		return c.plans[a].Rank - c.plans[b].Rank
	})

	return c, nil
}

// Plan returns the plan with the given ID. Not found is a normal outcome.
func (c *Catalog) Plan(id string) (Plan, bool) {
	p, ok := c.plans[id]
	if !ok {
		return Plan{}, false
	}
	return p.clone(), true
}

// Verify returns ErrPlanNotFound if the plan does not exist.
func (c *Catalog) Verify(id string) error {
	if _, ok := c.plans[id]; !ok {
		return fmt.Errorf("%w: %q", ErrPlanNotFound, id)
	}
	return nil
}

// Limit returns the cap for key on the given plan.
// Unlimited means no ceiling, 0 means forbidden.
// ok is false when the plan is unknown or the key is not configured on it.
func (c *Catalog) Limit(planID string, key LimitKey) (limit int64, ok bool) {
	p, exists := c.plans[planID]
	if !exists {
		return 0, false
	}
	return p.Limit(key)
}

// HasFeature reports whether the plan includes the feature.
// Unknown plans and unknown features both resolve to false.
func (c *Catalog) HasFeature(planID string, f Feature) bool {
	p, ok := c.plans[planID]
	if !ok {
		return false
	}
	return p.HasFeature(f)
}

// CanUpgrade reports whether moving from one plan to another is an upgrade,
// i.e. the destination rank is strictly greater. Unknown plans yield false.
func (c *Catalog) CanUpgrade(fromPlanID, toPlanID string) bool {
	from, ok := c.plans[fromPlanID]
	if !ok {
		return false
	}
	to, ok := c.plans[toPlanID]
	if !ok {
		return false
	}
	return to.Rank > from.Rank
}

// Plans returns all plans ordered by rank ascending.
func (c *Catalog) Plans() []Plan {
	out := make([]Plan, 0, len(c.ranked))
	for _, id := range c.ranked {
		out = append(out, c.plans[id].clone())
	}
	return out
}

// Next returns the plan ranked directly above planID.
func (c *Catalog) Next(planID string) (Plan, bool) {
	idx := slices.Index(c.ranked, planID)
	if idx < 0 || idx == len(c.ranked)-1 {
		return Plan{}, false
	}
	return c.plans[c.ranked[idx+1]].clone(), true
}

// IsTopTier reports whether planID has the highest rank in the catalog.
func (c *Catalog) IsTopTier(planID string) bool {
	return len(c.ranked) > 0 && c.ranked[len(c.ranked)-1] == planID
}

// LowestPaid returns the lowest ranked plan with a non-zero price.
func (c *Catalog) LowestPaid() (Plan, bool) {
	for _, id := range c.ranked {
		if p := c.plans[id]; !p.IsFree() {
			return p.clone(), true
		}
	}
	return Plan{}, false
}

func validatePlans(plans map[string]Plan) error {
	ranks := make(map[int]string, len(plans))
	for id, p := range plans {
		if !planIDPattern.MatchString(id) {
			return errors.Join(ErrInvalidPlanConfiguration, fmt.Errorf("invalid plan id %q", id))
		}
		if p.ID != id {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s is registered under mismatched id %q", p.ID, id))
		}
		if other, dup := ranks[p.Rank]; dup {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plans %s and %s share rank %d", other, id, p.Rank))
		}
		ranks[p.Rank] = id
		if p.TrialDays < 0 {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has negative trial days: %d", id, p.TrialDays))
		}
		if p.PriceMonthly < 0 {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has negative price: %d", id, p.PriceMonthly))
		}
		for key, limit := range p.Limits {
			if limit < Unlimited {
				return errors.Join(ErrInvalidPlanConfiguration,
					fmt.Errorf("plan %s has invalid %s limit: %d", id, key, limit))
			}
		}
	}
	return nil
}
