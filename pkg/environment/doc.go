// Package environment propagates the deployment environment (development,
// staging, production, test) through context.Context.
//
// Parse normalizes the APP_ENV value and Middleware attaches it to every
// request. The logger factory stamps it on records. Components that change
// behavior in production, such as the default tenant fallback, take an
// Environment directly and ask IsProduction.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	router.Use(environment.Middleware(env))
package environment
