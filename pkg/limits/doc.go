// Package limits gates creation of countable resources (clients, services,
// employees, users) against the caps of the tenant's plan.
//
// Validator is a pure decision function: given a plan, a resource type and
// the current count it returns a Result. A missing or uncapped limit always
// allows, an unknown plan allows with a warning, and malformed input
// (empty resource or plan, negative count) is returned as an error.
//
//	v := limits.NewValidator(catalog)
//	res, err := v.Validate("basic", limits.ResourceClients, 99)
//	// res.Allowed == true, res.Remaining == 1
//
// Guard adds a CounterRegistry so handlers can check a tenant.Context
// directly, and carries the downgrade check and usage overview:
//
//	counters := limits.NewRegistry()
//	counters.Register(limits.ResourceClients, repo.CountClients)
//	guard := limits.NewGuard(catalog, counters)
//
//	if _, err := guard.CanCreate(ctx, tc, limits.ResourceClients); errors.Is(err, limits.ErrLimitExceeded) {
//		// render upgrade prompt
//	}
//
// This is independent from API call rate limiting, which lives in the
// ratelimiter package.
package limits
