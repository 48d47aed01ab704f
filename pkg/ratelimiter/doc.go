// Package ratelimiter enforces the monthly API call quota of each tenant's plan.
//
// Engine.Allow is the single authority for "is this call allowed right now".
// It reads the plan cap from the catalog and the tenant's current period
// counter from a usage.Store:
//
//   - Unlimited requests (platform owners) are allowed without touching the store.
//   - Unknown plans and uncapped plans are allowed; the call is still counted
//     for reporting. An unknown plan is flagged as a fallback.
//   - Otherwise the counter is peeked. At or over the cap the call is denied
//     and not counted; below it the counter is incremented.
//
// The engine fails open. Store errors, store timeouts (50ms by default) and
// panics all yield an allowed Decision with Fallback set and a warning in the
// log, so callers can tell a real permit from a degraded one.
//
// # HTTP
//
// Middleware applies the engine to requests carrying a tenant.Context and
// writes X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Used and
// X-RateLimit-Reset. Denied calls get 429 with a JSON body that includes a
// recommendation: "upgrade" with the next tier when one exists, otherwise
// "contact_support".
//
//	engine := ratelimiter.NewEngine(catalog, store,
//		ratelimiter.WithLogger(log),
//		ratelimiter.WithMetrics(metrics),
//	)
//	r.Use(tenant.Middleware(resolver), ratelimiter.Middleware(engine))
//
// ResetHandler and StatusHandler expose the administrative reset and a
// read-only usage view.
package ratelimiter
