package usage

import (
	"context"
	"time"
)

// Counter is a snapshot of a tenant's usage within one period.
type Counter struct {
	TenantID        string    `json:"tenant_id"`
	Period          Period    `json:"period"`
	Count           int64     `json:"count"`
	WindowStartedAt time.Time `json:"window_started_at"`
}

// ResetAt returns the instant the counter stops applying.
func (c Counter) ResetAt() time.Time {
	return c.Period.End()
}

// Store maintains per-tenant, per-period call counters.
// Implementations must make Increment atomic per tenant.
type Store interface {
	// Increment adds one call to the tenant's counter for the current period,
	// creating the counter if needed, and returns the updated snapshot.
	Increment(ctx context.Context, tenantID string) (Counter, error)

	// Peek returns the tenant's counter for the current period without changing it.
	// A tenant with no calls this period gets a zero counter.
	Peek(ctx context.Context, tenantID string) (Counter, error)

	// Reset forces the tenant's counter for the current period to zero.
	// Intended for trusted administrative callers only.
	Reset(ctx context.Context, tenantID string) error
}

// Clock returns the current time. Tests override it to cross period boundaries.
type Clock func() time.Time

type options struct {
	now             Clock
	cleanupInterval time.Duration
	keyPrefix       string
	ttlGrace        time.Duration
}

func defaultOptions() *options {
	return &options{
		now:             time.Now,
		cleanupInterval: 10 * time.Minute,
		keyPrefix:       "planguard:usage:",
		ttlGrace:        31 * 24 * time.Hour,
	}
}

// Option configures a Store.
type Option func(*options)

// WithClock overrides the wall clock used for period detection.
func WithClock(now Clock) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithCleanupInterval sets how often MemoryStore drops superseded counters.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// WithKeyPrefix sets the Redis key prefix used by RedisStore.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.keyPrefix = prefix
		}
	}
}

// WithRetention sets how long RedisStore keeps a counter after its period ends.
func WithRetention(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttlGrace = d
		}
	}
}
