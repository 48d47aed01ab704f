// Package redis connects to the Redis server that backs the shared usage
// counters when several planguard instances serve the same tenants.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		store := usage.NewRedisStore(client, usage.WithKeyPrefix(cfg.KeyPrefix))
//	}
//
// Healthcheck turns a client into a readiness probe for the /healthz route.
package redis
