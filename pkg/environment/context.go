package environment

import (
	"context"
	"strings"
)

// Environment represents application environment.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Staging for staging environment.
	Staging Environment = "staging"
	// Production for production environment.
	Production Environment = "production"
	// Test for automated test runs.
	Test Environment = "test"
)

// Parse normalizes common spellings ("prod", "dev", "stage") to the
// canonical values. Unknown names are returned lower-cased as is.
func Parse(s string) Environment {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "prod", "production":
		return Production
	case "stage", "staging":
		return Staging
	case "dev", "development", "":
		return Development
	case "test", "testing":
		return Test
	default:
		return Environment(v)
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool { return Parse(string(e)) == Production }

// IsDevelopment reports whether e is the development environment.
func (e Environment) IsDevelopment() bool { return e != "" && Parse(string(e)) == Development }

// IsStaging reports whether e is the staging environment.
func (e Environment) IsStaging() bool { return Parse(string(e)) == Staging }

func (e Environment) String() string { return string(e) }

type contextKey struct{}

// WithContext adds environment to context
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves environment from context
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction checks if the environment from context is production
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx).IsProduction()
}
