package ratelimiter

import (
	"time"

	"github.com/salonsuite/planguard/pkg/plans"
)

// Recommendation tells the presentation layer what to suggest on denial.
type Recommendation string

const (
	RecommendNone           Recommendation = ""
	RecommendUpgrade        Recommendation = "upgrade"
	RecommendContactSupport Recommendation = "contact_support"
)

// Fallback reasons reported on Decision.FallbackReason and in metrics.
const (
	ReasonUnknownPlan      = "unknown_plan"
	ReasonStoreUnavailable = "store_unavailable"
	ReasonInternalError    = "internal_error"
	ReasonMissingTenant    = "missing_tenant"
)

// Request is the input of a single rate limit check.
type Request struct {
	TenantID string
	PlanID   string
	// Unlimited bypasses counting entirely. Resolved once upstream for
	// platform owners and super admins.
	Unlimited bool
}

// Decision is the outcome of a check. Limit and Remaining are plans.Unlimited
// when no ceiling applies.
type Decision struct {
	Allowed   bool      `json:"allowed"`
	Limit     int64     `json:"limit"`
	Used      int64     `json:"used"`
	Remaining int64     `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`

	// Fallback is true when the call was permitted because something went
	// wrong, not because quota was available.
	Fallback       bool   `json:"fallback"`
	FallbackReason string `json:"fallback_reason,omitempty"`

	PlanID         string         `json:"plan_id"`
	Recommendation Recommendation `json:"recommendation,omitempty"`
	UpgradePlanID  string         `json:"upgrade_plan_id,omitempty"`
}

// Unlimited reports whether no ceiling applied to the decision.
func (d Decision) Unlimited() bool {
	return d.Limit == plans.Unlimited
}

// RetryAfter returns how long until quota is restored. Zero if allowed.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.Allowed || d.ResetAt.IsZero() {
		return 0
	}
	return max(0, d.ResetAt.Sub(now))
}
