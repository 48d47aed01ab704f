package plans

import (
	"maps"
	"slices"
	"time"
)

// Plan describes a subscription tier and its feature/limit constraints.
type Plan struct {
	ID           string
	Name         string
	Description  string
	PriceMonthly int64  // Monthly price in minor currency units
	Currency     string // ISO 4217 code
	Rank         int    // Tier order, higher is better
	Public       bool   // Available for self-registration
	TrialDays    int    // 0 disables trial
	Features     []Feature
	Limits       map[LimitKey]int64
}

// Limit returns the configured cap for key. ok is false when the key is not configured.
func (p Plan) Limit(key LimitKey) (limit int64, ok bool) {
	limit, ok = p.Limits[key]
	return limit, ok
}

// HasFeature reports whether the plan includes the feature.
func (p Plan) HasFeature(f Feature) bool {
	return slices.Contains(p.Features, f)
}

// IsFree reports whether the plan costs nothing.
func (p Plan) IsFree() bool {
	return p.PriceMonthly == 0
}

// TrialEndsAt returns the timestamp when a trial period ends for this plan.
// If no trial is available, returns startedAt.
func (p Plan) TrialEndsAt(startedAt time.Time) time.Time {
	if p.TrialDays <= 0 {
		return startedAt
	}
	return startedAt.AddDate(0, 0, p.TrialDays).UTC()
}

// IsTrialActiveAt reports whether a trial started at startedAt is still running at now.
func (p Plan) IsTrialActiveAt(startedAt, now time.Time) bool {
	if p.TrialDays <= 0 {
		return false
	}
	return now.UTC().Before(p.TrialEndsAt(startedAt))
}

func (p Plan) clone() Plan {
	c := p
	c.Features = slices.Clone(p.Features)
	c.Limits = maps.Clone(p.Limits)
	return c
}

// Comparison contains the differences between two plans.
type Comparison struct {
	NewFeatures     []Feature
	LostFeatures    []Feature
	IncreasedLimits map[LimitKey]LimitChange
	DecreasedLimits map[LimitKey]LimitChange
	NewLimits       map[LimitKey]int64 // configured only on the target plan
	RemovedLimits   map[LimitKey]int64 // configured only on the current plan
}

// LimitChange represents a change of a single cap.
type LimitChange struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// HasDecreases returns true if any limit shrinks or disappears.
func (c *Comparison) HasDecreases() bool {
	return len(c.DecreasedLimits) > 0 || len(c.RemovedLimits) > 0
}

// ComparePlans returns the differences between current and target plans.
func ComparePlans(current, target *Plan) *Comparison {
	if current == nil || target == nil {
		return nil
	}

	cmp := &Comparison{
		NewFeatures:     make([]Feature, 0),
		LostFeatures:    make([]Feature, 0),
		IncreasedLimits: make(map[LimitKey]LimitChange),
		DecreasedLimits: make(map[LimitKey]LimitChange),
		NewLimits:       make(map[LimitKey]int64),
		RemovedLimits:   make(map[LimitKey]int64),
	}

	for _, f := range target.Features {
		if !slices.Contains(current.Features, f) {
			cmp.NewFeatures = append(cmp.NewFeatures, f)
		}
	}
	for _, f := range current.Features {
		if !slices.Contains(target.Features, f) {
			cmp.LostFeatures = append(cmp.LostFeatures, f)
		}
	}

	for key, to := range target.Limits {
		from, exists := current.Limits[key]
		if !exists {
			cmp.NewLimits[key] = to
			continue
		}
		if from == to {
			continue
		}

		change := LimitChange{From: from, To: to}
		switch {
		case from == Unlimited:
			cmp.DecreasedLimits[key] = change
		case to == Unlimited, to > from:
			cmp.IncreasedLimits[key] = change
		default:
			cmp.DecreasedLimits[key] = change
		}
	}

	for key, from := range current.Limits {
		if _, exists := target.Limits[key]; !exists {
			cmp.RemovedLimits[key] = from
		}
	}

	return cmp
}
