package tenant

import (
	"context"
	"log/slog"
)

type (
	contextKey  struct{}
	identityKey struct{}
)

// WithContext attaches the resolved tenant context.
func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// FromContext returns the resolved tenant context, if any.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(contextKey{}).(Context)
	return tc, ok
}

// IDFromContext returns only the tenant id.
func IDFromContext(ctx context.Context) (string, bool) {
	tc, ok := FromContext(ctx)
	if !ok || tc.TenantID == "" {
		return "", false
	}
	return tc.TenantID, true
}

// MustFromContext panics if no tenant is found. Use only in handlers
// mounted behind RequireTenant.
func MustFromContext(ctx context.Context) Context {
	tc, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return tc
}

// WithIdentity attaches the authenticated identity. Authentication middleware
// calls this after normalizing its token or session claims.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// LoggerExtractor returns a function that enriches log records with tenant ID
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
