// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a client supplied X-Request-ID header when it is at most
// 128 characters of letters, digits, '-' and '_'. Anything else is replaced by
// a fresh UUID. The id is stored in the request context and echoed back in
// the response.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
// LoggerExtractor plugs the id into pkg/logger so that every record logged
// with the request context carries "request_id".
package requestid
