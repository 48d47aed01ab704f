// Package logger builds the service's *slog.Logger.
//
// New takes functional options for level, format, output and static
// attributes. WithEnvironment applies the preset for the deployment
// environment, and Config maps LOG_LEVEL and LOG_FORMAT onto the same options.
//
// Context extractors let request-scoped values follow every record without
// threading them through call sites: the request id, the resolved tenant and
// the environment are all attached this way.
//
//	log := logger.New(
//		logger.WithEnvironment(env, "planguard"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//		),
//	)
//	log.WarnContext(ctx, "usage store unavailable", logger.Error(err))
//
// The attribute helpers in this package keep key names consistent.
package logger
