package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salonsuite/planguard/internal/api"
	"github.com/salonsuite/planguard/internal/db/migrations"
	"github.com/salonsuite/planguard/internal/tenantstore"
	"github.com/salonsuite/planguard/pkg/clientip"
	"github.com/salonsuite/planguard/pkg/config"
	"github.com/salonsuite/planguard/pkg/environment"
	"github.com/salonsuite/planguard/pkg/httpserver"
	"github.com/salonsuite/planguard/pkg/limits"
	"github.com/salonsuite/planguard/pkg/logger"
	"github.com/salonsuite/planguard/pkg/pg"
	"github.com/salonsuite/planguard/pkg/plans"
	"github.com/salonsuite/planguard/pkg/ratelimiter"
	"github.com/salonsuite/planguard/pkg/redis"
	"github.com/salonsuite/planguard/pkg/requestid"
	"github.com/salonsuite/planguard/pkg/tenant"
	"github.com/salonsuite/planguard/pkg/usage"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Name        string `env:"APP_NAME" envDefault:"planguard"`
	AdminToken  string `env:"ADMIN_TOKEN"`
	AutoMigrate bool   `env:"PG_AUTO_MIGRATE" envDefault:"true"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("planguard stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg     appConfig
		logCfg     logger.Config
		httpCfg    httpserver.Config
		plansCfg   plans.Config
		tenantCfg  tenant.Config
		limiterCfg ratelimiter.Config
		redisCfg   redis.Config
		pgCfg      pg.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&logCfg),
		config.Load(&httpCfg),
		config.Load(&plansCfg),
		config.Load(&tenantCfg),
		config.Load(&limiterCfg),
		config.Load(&redisCfg),
		config.Load(&pgCfg),
	); err != nil {
		return err
	}

	env := environment.Parse(appCfg.Env)
	log := logger.New(append(
		[]logger.Option{
			logger.WithEnvironment(env, appCfg.Name),
			logger.WithContextExtractors(
				requestid.LoggerExtractor(),
				clientip.LoggerExtractor(),
				tenant.LoggerExtractor(),
			),
		},
		logCfg.Options()...,
	)...)
	logger.SetAsDefault(log)

	catalog, err := plans.NewCatalog(ctx, plans.NewSourceFromConfig(plansCfg))
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "plan catalog loaded", slog.Int("plans", len(catalog.Plans())))

	checks := make(map[string]httpserver.Check)

	store, closeStore, err := usageStore(ctx, redisCfg, checks, log)
	if err != nil {
		return err
	}
	defer closeStore()

	provider, writer, closeProvider, err := tenantProvider(ctx, pgCfg, appCfg.AutoMigrate, checks, log)
	if err != nil {
		return err
	}
	defer closeProvider()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := ratelimiter.NewMetrics(reg)
	if err != nil {
		return err
	}

	resolver := tenant.NewContextResolver(provider, append(tenantCfg.Options(),
		tenant.WithLogger(log),
		tenant.WithEnvironment(env),
	)...)
	engine := ratelimiter.NewEngine(catalog, store,
		ratelimiter.WithLogger(log),
		ratelimiter.WithStoreTimeout(limiterCfg.StoreTimeout),
		ratelimiter.WithMetrics(metrics),
	)
	guard := limits.NewGuard(catalog, limits.NewRegistry(), limits.WithLogger(log))

	if appCfg.AdminToken == "" {
		log.WarnContext(ctx, "ADMIN_TOKEN not set, admin routes disabled")
	}

	router := api.NewRouter(api.RouterOptions{
		Logger:      log,
		Environment: env,
		Catalog:     catalog,
		Resolver:    resolver,
		Engine:      engine,
		Guard:       guard,
		Tenants:     writer,
		AdminToken:  appCfg.AdminToken,
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Checks:      checks,
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

// usageStore picks Redis when configured so that counters are shared across
// instances, and a process-local store otherwise.
func usageStore(ctx context.Context, cfg redis.Config, checks map[string]httpserver.Check, log *slog.Logger) (usage.Store, func(), error) {
	if !cfg.Enabled() {
		log.WarnContext(ctx, "REDIS_URL not set, usage counters are local to this process")
		ms := usage.NewMemoryStore()
		return ms, ms.Close, nil
	}

	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect usage store: %w", err)
	}
	checks["redis"] = redis.Healthcheck(client)
	log.InfoContext(ctx, "usage counters stored in redis")

	return usage.NewRedisStore(client, usage.WithKeyPrefix(cfg.KeyPrefix)), func() { _ = client.Close() }, nil
}

// tenantProvider picks Postgres when configured and a seeded in-memory
// provider otherwise.
func tenantProvider(
	ctx context.Context,
	cfg pg.Config,
	migrate bool,
	checks map[string]httpserver.Check,
	log *slog.Logger,
) (tenant.Provider, api.TenantWriter, func(), error) {
	if !cfg.Enabled() {
		log.WarnContext(ctx, "PG_CONN_URL not set, tenant records are kept in memory")
		mp := tenant.NewMemoryProvider()
		return mp, mp, func() {}, nil
	}

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect tenant store: %w", err)
	}
	if migrate {
		if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
	}
	checks["postgres"] = pg.Healthcheck(pool)

	store := tenantstore.New(pool)
	return store, store, pool.Close, nil
}
