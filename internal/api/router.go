package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/salonsuite/planguard/pkg/clientip"
	"github.com/salonsuite/planguard/pkg/environment"
	"github.com/salonsuite/planguard/pkg/httpserver"
	"github.com/salonsuite/planguard/pkg/limits"
	"github.com/salonsuite/planguard/pkg/plans"
	"github.com/salonsuite/planguard/pkg/ratelimiter"
	"github.com/salonsuite/planguard/pkg/requestid"
	"github.com/salonsuite/planguard/pkg/tenant"
)

// TenantWriter persists tenant records for the admin API.
type TenantWriter interface {
	Upsert(ctx context.Context, rec tenant.Record) error
}

// RouterOptions carries the components the HTTP API is wired from.
// Tenants, Metrics and Checks are optional.
type RouterOptions struct {
	Logger      *slog.Logger
	Environment environment.Environment
	Catalog     *plans.Catalog
	Resolver    *tenant.ContextResolver
	Engine      *ratelimiter.Engine
	Guard       *limits.Guard
	Tenants     TenantWriter
	AdminToken  string
	Metrics     http.Handler
	Checks      map[string]httpserver.Check
}

// NewRouter mounts the public, tenant and admin routes.
//
//	GET  /healthz
//	GET  /metrics
//	GET  /api/v1/plans
//	GET  /api/v1/quota
//	GET  /api/v1/usage
//	POST /api/v1/limits/{resource}/check
//	PUT  /admin/tenants/{tenantID}
//	POST /admin/tenants/{tenantID}/usage/reset
func NewRouter(opts RouterOptions) chi.Router {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	h := &handlers{
		log:      opts.Logger.With(slog.String("component", "api")),
		catalog:  opts.Catalog,
		resolver: opts.Resolver,
		engine:   opts.Engine,
		guard:    opts.Guard,
		tenants:  opts.Tenants,
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(opts.Environment),
		accessLog(h.log),
		recoverer(h.log),
	)

	r.Get("/healthz", httpserver.HealthHandler(h.log, 2*time.Second, opts.Checks))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/plans", h.listPlans)

		api.Group(func(tr chi.Router) {
			tr.Use(
				tenant.Middleware(opts.Resolver),
				tenant.RequireTenant(tenantRequired),
			)
			// Quota reads stay available after the tenant is throttled.
			tr.Method(http.MethodGet, "/quota", ratelimiter.StatusHandler(opts.Engine))

			tr.Group(func(lr chi.Router) {
				lr.Use(ratelimiter.Middleware(opts.Engine))
				lr.Get("/usage", h.usage)
				lr.Post("/limits/{resource}/check", h.checkLimit)
			})
		})
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(bearerAuth(opts.AdminToken))
		admin.Route("/tenants/{tenantID}", func(t chi.Router) {
			if opts.Tenants != nil {
				t.Put("/", h.upsertTenant)
			}
			t.Method(http.MethodPost, "/usage/reset", ratelimiter.ResetHandler(opts.Engine, tenantIDParam))
		})
	})

	return r
}

func tenantIDParam(r *http.Request) string {
	return chi.URLParam(r, "tenantID")
}
