package environment

import "net/http"

// Middleware stores the normalized env in every request context.
func Middleware(env Environment) func(http.Handler) http.Handler {
	env = Parse(string(env))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		})
	}
}
