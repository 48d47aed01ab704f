package limits

import "github.com/salonsuite/planguard/pkg/plans"

// Resource is a countable entity a tenant creates under its plan.
type Resource string

// Resources gated by plan caps.
const (
	ResourceClients   = Resource(plans.LimitClients)
	ResourceServices  = Resource(plans.LimitServices)
	ResourceEmployees = Resource(plans.LimitEmployees)
	ResourceUsers     = Resource(plans.LimitUsers)
)

// Resources lists the built-in resource types.
func Resources() []Resource {
	return []Resource{ResourceClients, ResourceServices, ResourceEmployees, ResourceUsers}
}

func (r Resource) key() plans.LimitKey { return plans.LimitKey(r) }

// Result is the outcome of a creation check. Limit and Remaining are
// plans.Unlimited when the resource is uncapped.
type Result struct {
	Allowed   bool     `json:"allowed"`
	Resource  Resource `json:"resource"`
	PlanID    string   `json:"plan_id"`
	Limit     int64    `json:"limit"`
	Current   int64    `json:"current"`
	Remaining int64    `json:"remaining"`
	// Fallback is set when the plan was unknown and the check allowed by default.
	Fallback bool `json:"fallback,omitempty"`
}

// Unlimited reports whether no cap applied.
func (r Result) Unlimited() bool {
	return r.Limit == plans.Unlimited
}

// Percent returns usage as 0-100, or -1 when uncapped.
func (r Result) Percent() int {
	switch {
	case r.Unlimited():
		return -1
	case r.Limit == 0:
		return 100
	default:
		return int(min((r.Current*100)/r.Limit, 100))
	}
}

// UsageInfo contains the current usage and limit for a resource.
type UsageInfo struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}
