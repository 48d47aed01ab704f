// Package httpserver runs the planguard HTTP API with sane timeouts and a
// graceful shutdown.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns once ctx is cancelled and in-flight requests have drained or
// the shutdown timeout expired.
//
// HealthHandler aggregates named dependency checks, such as the Redis and
// Postgres pings, into a JSON readiness response.
package httpserver
