package ratelimiter

import (
	"log/slog"
	"time"

	"github.com/salonsuite/planguard/pkg/plans"
)

// DefaultStoreTimeout bounds every usage store call made by the engine.
const DefaultStoreTimeout = 50 * time.Millisecond

// Config is the env-driven part of the engine setup.
type Config struct {
	StoreTimeout time.Duration `env:"RATELIMIT_STORE_TIMEOUT" envDefault:"50ms"`
}

type options struct {
	logger       *slog.Logger
	storeTimeout time.Duration
	metrics      *Metrics
	now          func() time.Time
	limitKey     plans.LimitKey
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger for fail-open warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStoreTimeout bounds each store call. A timed out call fails open.
func WithStoreTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.storeTimeout = d
		}
	}
}

// WithMetrics records decisions and fallbacks.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithClock overrides the time source used for reset timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLimitKey selects the plan limit the engine enforces.
// Defaults to plans.LimitAPICallsMonthly.
func WithLimitKey(key plans.LimitKey) Option {
	return func(o *options) {
		if key != "" {
			o.limitKey = key
		}
	}
}
