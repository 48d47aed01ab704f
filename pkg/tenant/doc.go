// Package tenant resolves the single tenant identity of an HTTP request and
// the plan it is billed against.
//
// Upstream code reads the tenant from several places: an explicit header,
// the subdomain, or the authenticated token or session. All of these collapse
// into one ordered chain owned by ContextResolver, so every downstream
// component reads one canonical Context instead of probing fields itself.
//
// # Resolution order
//
//  1. Explicit header (X-Tenant-ID by default)
//  2. Subdomain, when enabled with WithSubdomain
//  3. The Identity attached by the authorization layer via WithIdentity
//  4. The default tenant, when enabled with WithDefaultTenant
//
// A malformed candidate is logged and the next step is tried. Attributing
// unauthenticated traffic to the default tenant is logged at warn level every
// time it happens and is disabled in production unless explicitly allowed.
//
// # Plan lookup
//
// Once an id is known the resolver asks the Provider for the tenant Record.
// Records are cached with a TTL and concurrent misses for the same tenant
// share one provider call. An unknown tenant or a failing store yields the
// configured default plan plus a warning; the request is never rejected.
// The tenant status is copied into the Context but not enforced here.
//
// # Usage
//
//	resolver := tenant.NewContextResolver(provider,
//		tenant.WithLogger(log),
//		tenant.WithDefaultPlan("basic"),
//		tenant.WithDefaultTenant("demo"),
//		tenant.WithEnvironment(environment.Development),
//	)
//
//	router.Use(tenant.Middleware(resolver, "/healthz", "/metrics"))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		tc, ok := tenant.FromContext(r.Context())
//		if !ok {
//			// no tenant
//			return
//		}
//		_ = tc.PlanID
//	}
package tenant
