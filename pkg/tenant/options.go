package tenant

import (
	"log/slog"
	"time"

	"github.com/salonsuite/planguard/pkg/environment"
)

// Config is the env-driven part of the resolver setup.
type Config struct {
	Header                   string        `env:"TENANT_HEADER" envDefault:"X-Tenant-ID"`
	SubdomainSuffix          string        `env:"TENANT_SUBDOMAIN_SUFFIX"`
	DefaultID                string        `env:"TENANT_DEFAULT_ID"`
	DefaultPlan              string        `env:"TENANT_DEFAULT_PLAN" envDefault:"basic"`
	AllowDefaultInProduction bool          `env:"TENANT_ALLOW_DEFAULT_IN_PRODUCTION" envDefault:"false"`
	CacheSize                int           `env:"TENANT_CACHE_SIZE" envDefault:"1000"`
	CacheTTL                 time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
}

type options struct {
	logger       *slog.Logger
	header       string
	subdomain    *string
	defaultID    string
	defaultPlan  string
	env          environment.Environment
	allowDefault bool
	cache        Cache
}

// Option configures a ContextResolver.
type Option func(*options)

// WithLogger sets the logger for resolution warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHeader overrides the tenant header name.
func WithHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.header = name
		}
	}
}

// WithSubdomain enables subdomain resolution between the header and identity steps.
func WithSubdomain(suffix string) Option {
	return func(o *options) {
		o.subdomain = &suffix
	}
}

// WithDefaultTenant enables the fallback identity for requests that carry none.
// Every use is logged at warn level. Ignored in production unless
// WithAllowDefaultInProduction is also set.
func WithDefaultTenant(id string) Option {
	return func(o *options) {
		o.defaultID = id
	}
}

// WithDefaultPlan sets the plan used when the tenant store has no usable record.
func WithDefaultPlan(planID string) Option {
	return func(o *options) {
		o.defaultPlan = planID
	}
}

// WithEnvironment tells the resolver which deployment it runs in.
func WithEnvironment(env environment.Environment) Option {
	return func(o *options) {
		o.env = env
	}
}

// WithAllowDefaultInProduction keeps the default tenant active in production.
func WithAllowDefaultInProduction() Option {
	return func(o *options) {
		o.allowDefault = true
	}
}

// WithCache sets a custom record cache.
func WithCache(c Cache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// Options converts the config into resolver options.
func (c Config) Options() []Option {
	opts := []Option{
		WithHeader(c.Header),
		WithDefaultPlan(c.DefaultPlan),
		WithCache(NewInMemoryCache(c.CacheSize, c.CacheTTL)),
	}
	if c.SubdomainSuffix != "" {
		opts = append(opts, WithSubdomain(c.SubdomainSuffix))
	}
	if c.DefaultID != "" {
		opts = append(opts, WithDefaultTenant(c.DefaultID))
	}
	if c.AllowDefaultInProduction {
		opts = append(opts, WithAllowDefaultInProduction())
	}
	return opts
}
