package tenant

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/salonsuite/planguard/pkg/logger"
)

type step struct {
	source  Source
	resolve Resolver
}

// ContextResolver computes the single tenant Context for a request.
//
// Precedence, first match wins: explicit header, subdomain (when enabled),
// the authenticated Identity, then the configured default tenant.
// Resolution never fails the request. Malformed candidates are logged and
// skipped, and store failures fall back to the default plan.
type ContextResolver struct {
	provider    Provider
	cache       Cache
	group       singleflight.Group
	steps       []step
	defaultID   string
	defaultPlan string
	logger      *slog.Logger
}

// NewContextResolver builds a resolver backed by provider.
func NewContextResolver(provider Provider, opts ...Option) *ContextResolver {
	if provider == nil {
		panic("tenant: provider is required")
	}

	o := &options{
		logger: slog.Default(),
		header: DefaultHeader,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.cache == nil {
		o.cache = NewInMemoryCache(DefaultCacheSize, DefaultCacheTTL)
	}

	log := o.logger.With(logger.Component("tenant"))

	steps := []step{{source: SourceHeader, resolve: NewHeaderResolver(o.header)}}
	if o.subdomain != nil {
		steps = append(steps, step{source: SourceSubdomain, resolve: NewSubdomainResolver(*o.subdomain)})
	}
	steps = append(steps, step{source: SourceIdentity, resolve: NewIdentityResolver()})

	defaultID := o.defaultID
	if defaultID != "" {
		switch {
		case !ValidID(defaultID):
			log.Warn("default tenant ignored: invalid identifier", logger.TenantID(defaultID))
			defaultID = ""
		case o.env.IsProduction() && !o.allowDefault:
			log.Warn("default tenant ignored in production", logger.TenantID(defaultID))
			defaultID = ""
		}
	}

	return &ContextResolver{
		provider:    provider,
		cache:       o.cache,
		steps:       steps,
		defaultID:   defaultID,
		defaultPlan: o.defaultPlan,
		logger:      log,
	}
}

// Resolve returns the tenant context for r.
// ok is false only when no step produced an id and no default tenant is configured.
func (cr *ContextResolver) Resolve(r *http.Request) (Context, bool) {
	ctx := r.Context()

	id, source := cr.identify(r)
	if id == "" {
		return Context{}, false
	}

	tc := Context{
		TenantID:  id,
		PlanID:    cr.defaultPlan,
		Source:    source,
		Defaulted: source == SourceDefault,
	}

	rec, err := cr.record(ctx, id)
	switch {
	case err == nil:
		if rec.PlanID != "" {
			tc.PlanID = rec.PlanID
		}
		tc.Status = rec.Status
		tc.Unlimited = rec.Unlimited
	case errors.Is(err, ErrTenantNotFound):
		cr.logger.WarnContext(ctx, "tenant record not found, using default plan",
			logger.TenantID(id), logger.PlanID(cr.defaultPlan))
	default:
		cr.logger.WarnContext(ctx, "tenant store lookup failed, using default plan",
			logger.TenantID(id), logger.PlanID(cr.defaultPlan), logger.Error(err))
	}

	if identity, ok := IdentityFromContext(ctx); ok && identity.Unlimited {
		tc.Unlimited = true
	}

	return tc, true
}

// Invalidate drops the cached record so the next request reloads it.
func (cr *ContextResolver) Invalidate(ctx context.Context, id string) {
	cr.cache.Delete(ctx, id)
}

func (cr *ContextResolver) identify(r *http.Request) (string, Source) {
	for _, s := range cr.steps {
		id, err := s.resolve(r)
		if err != nil {
			cr.logger.WarnContext(r.Context(), "tenant candidate rejected",
				slog.String("source", string(s.source)), logger.Error(err))
			continue
		}
		if id != "" {
			return id, s.source
		}
	}

	if cr.defaultID != "" {
		cr.logger.WarnContext(r.Context(), "request attributed to default tenant",
			logger.TenantID(cr.defaultID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))
		return cr.defaultID, SourceDefault
	}

	return "", ""
}

func (cr *ContextResolver) record(ctx context.Context, id string) (Record, error) {
	if rec, ok := cr.cache.Get(ctx, id); ok {
		return rec, nil
	}

	v, err, _ := cr.group.Do(id, func() (any, error) {
		// Shared by every waiter, so one caller's cancellation must not abort it.
		rec, err := cr.provider.GetRecord(context.WithoutCancel(ctx), id)
		if err != nil {
			return Record{}, err
		}
		if rec == nil {
			return Record{}, ErrTenantNotFound
		}
		cr.cache.Set(ctx, id, *rec)
		return *rec, nil
	})
	if err != nil {
		return Record{}, err
	}
	return v.(Record), nil
}
