package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/salonsuite/planguard/pkg/logger"
	"github.com/salonsuite/planguard/pkg/plans"
	"github.com/salonsuite/planguard/pkg/usage"
)

// PlanCatalog is the read side of the plan catalog the engine needs.
type PlanCatalog interface {
	Plan(id string) (plans.Plan, bool)
	Next(id string) (plans.Plan, bool)
}

// Engine decides whether an API call is allowed under the tenant's monthly quota.
//
// Every internal failure resolves to an allowed Decision with Fallback set:
// an unknown plan, an unavailable or slow usage store, even a panic.
// Peek and increment are separate store calls, so concurrent requests racing
// at the boundary may overshoot the cap by at most the number in flight.
type Engine struct {
	catalog      PlanCatalog
	store        usage.Store
	logger       *slog.Logger
	storeTimeout time.Duration
	metrics      *Metrics
	now          func() time.Time
	limitKey     plans.LimitKey
}

// NewEngine creates an engine over catalog and store.
func NewEngine(catalog PlanCatalog, store usage.Store, opts ...Option) *Engine {
	o := &options{
		logger:       slog.Default(),
		storeTimeout: DefaultStoreTimeout,
		now:          time.Now,
		limitKey:     plans.LimitAPICallsMonthly,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Engine{
		catalog:      catalog,
		store:        store,
		logger:       o.logger.With(logger.Component("ratelimiter")),
		storeTimeout: o.storeTimeout,
		metrics:      o.metrics,
		now:          o.now,
		limitKey:     o.limitKey,
	}
}

// Allow checks and, when permitted, records one call. It never returns an
// error and never panics.
func (e *Engine) Allow(ctx context.Context, req Request) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WarnContext(ctx, "rate limit check panicked, allowing request",
				logger.TenantID(req.TenantID), logger.PlanID(req.PlanID), slog.Any("panic", r))
			d = e.unlimited(req)
			d.Fallback = true
			d.FallbackReason = ReasonInternalError
		}
		e.metrics.observe(d)
	}()

	return e.decide(ctx, req)
}

func (e *Engine) decide(ctx context.Context, req Request) Decision {
	if req.Unlimited {
		return e.unlimited(req)
	}

	if req.TenantID == "" {
		e.logger.WarnContext(ctx, "rate limit check without tenant, allowing request", logger.PlanID(req.PlanID))
		d := e.unlimited(req)
		d.Fallback = true
		d.FallbackReason = ReasonMissingTenant
		return d
	}

	limit, known := e.limit(req.PlanID)
	if !known || limit == plans.Unlimited {
		d := e.unlimited(req)
		if !known {
			e.logger.WarnContext(ctx, "unknown plan, allowing request",
				logger.TenantID(req.TenantID), logger.PlanID(req.PlanID))
			d.Fallback = true
			d.FallbackReason = ReasonUnknownPlan
		}

		// Counted for reporting only.
		c, err := e.increment(ctx, req.TenantID)
		if err != nil {
			e.storeFailed(ctx, req, "increment", err, &d)
			return d
		}
		d.Used = c.Count
		d.ResetAt = c.ResetAt()
		return d
	}

	d := Decision{
		Limit:     limit,
		Remaining: limit,
		PlanID:    req.PlanID,
		ResetAt:   usage.NextReset(e.now()),
	}

	current, err := e.peek(ctx, req.TenantID)
	if err != nil {
		d.Allowed = true
		e.storeFailed(ctx, req, "peek", err, &d)
		return d
	}

	if current.Count >= limit {
		d.Used = current.Count
		d.Remaining = 0
		d.ResetAt = current.ResetAt()
		d.Recommendation, d.UpgradePlanID = e.recommend(req.PlanID)
		return d
	}

	d.Allowed = true
	next, err := e.increment(ctx, req.TenantID)
	if err != nil {
		d.Used = current.Count
		d.Remaining = limit - current.Count
		e.storeFailed(ctx, req, "increment", err, &d)
		return d
	}

	d.Used = next.Count
	d.Remaining = max(0, limit-next.Count)
	d.ResetAt = next.ResetAt()
	return d
}

// Status reports the tenant's current quota without recording a call.
// Allowed tells whether the next call would be permitted.
func (e *Engine) Status(ctx context.Context, req Request) Decision {
	if req.Unlimited {
		return e.unlimited(req)
	}

	d := Decision{PlanID: req.PlanID, ResetAt: usage.NextReset(e.now())}

	limit, known := e.limit(req.PlanID)
	if !known {
		d.Fallback = true
		d.FallbackReason = ReasonUnknownPlan
		limit = plans.Unlimited
	}
	d.Limit = limit

	if req.TenantID == "" {
		d.Allowed = true
		d.Remaining = limit
		return d
	}

	c, err := e.peek(ctx, req.TenantID)
	if err != nil {
		d.Allowed = true
		d.Remaining = limit
		e.storeFailed(ctx, req, "peek", err, &d)
		return d
	}

	d.Used = c.Count
	d.ResetAt = c.ResetAt()
	if limit == plans.Unlimited {
		d.Allowed = true
		d.Remaining = plans.Unlimited
		return d
	}

	d.Remaining = max(0, limit-c.Count)
	d.Allowed = c.Count < limit
	if !d.Allowed {
		d.Recommendation, d.UpgradePlanID = e.recommend(req.PlanID)
	}
	return d
}

// Reset zeroes the tenant's counter for the current period.
// Only trusted administrative callers may reach this.
func (e *Engine) Reset(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		return ErrNoTenant
	}
	if err := e.store.Reset(ctx, tenantID); err != nil {
		return errors.Join(ErrResetFailed, fmt.Errorf("tenant %s: %w", tenantID, err))
	}
	e.logger.InfoContext(ctx, "usage counter reset", logger.TenantID(tenantID))
	return nil
}

func (e *Engine) unlimited(req Request) Decision {
	return Decision{
		Allowed:   true,
		Limit:     plans.Unlimited,
		Remaining: plans.Unlimited,
		PlanID:    req.PlanID,
		ResetAt:   usage.NextReset(e.now()),
	}
}

// limit returns the enforced cap. A known plan without the key is uncapped.
func (e *Engine) limit(planID string) (int64, bool) {
	p, ok := e.catalog.Plan(planID)
	if !ok {
		return 0, false
	}
	limit, ok := p.Limit(e.limitKey)
	if !ok {
		return plans.Unlimited, true
	}
	return limit, true
}

func (e *Engine) recommend(planID string) (Recommendation, string) {
	if next, ok := e.catalog.Next(planID); ok {
		return RecommendUpgrade, next.ID
	}
	return RecommendContactSupport, ""
}

func (e *Engine) peek(ctx context.Context, tenantID string) (usage.Counter, error) {
	ctx, cancel := context.WithTimeout(ctx, e.storeTimeout)
	defer cancel()
	return e.store.Peek(ctx, tenantID)
}

func (e *Engine) increment(ctx context.Context, tenantID string) (usage.Counter, error) {
	ctx, cancel := context.WithTimeout(ctx, e.storeTimeout)
	defer cancel()
	return e.store.Increment(ctx, tenantID)
}

func (e *Engine) storeFailed(ctx context.Context, req Request, op string, err error, d *Decision) {
	e.logger.WarnContext(ctx, "usage store unavailable, allowing request",
		logger.TenantID(req.TenantID),
		logger.PlanID(req.PlanID),
		slog.String("op", op),
		logger.Error(err))

	d.Allowed = true
	d.Fallback = true
	if d.FallbackReason == "" {
		d.FallbackReason = ReasonStoreUnavailable
	}
	e.metrics.storeFailure()
}
