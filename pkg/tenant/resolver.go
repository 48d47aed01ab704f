package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

const (
	// MaxTenantIDLength keeps ids DNS compatible and bounds header abuse.
	MaxTenantIDLength = 63

	// DefaultHeader is the header read by NewHeaderResolver when no name is given.
	DefaultHeader = "X-Tenant-ID"
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// Resolver extracts a tenant id candidate from the request.
// Returns empty string if nothing was found, error if the candidate is malformed.
type Resolver func(r *http.Request) (string, error)

// ValidID reports whether id is an acceptable tenant identifier.
func ValidID(id string) bool {
	return id != "" && len(id) <= MaxTenantIDLength && idPattern.MatchString(id)
}

func validate(kind, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if !ValidID(value) {
		return "", fmt.Errorf("%w: %s %q", ErrInvalidIdentifier, kind, value)
	}
	return value, nil
}

// NewHeaderResolver reads the tenant id from a header.
// Defaults to "X-Tenant-ID" if headerName is empty.
func NewHeaderResolver(headerName string) Resolver {
	if headerName == "" {
		headerName = DefaultHeader
	}

	return func(r *http.Request) (string, error) {
		return validate("header value", r.Header.Get(headerName))
	}
}

// NewIdentityResolver reads the tenant id from the Identity attached by
// the authorization layer.
func NewIdentityResolver() Resolver {
	return func(r *http.Request) (string, error) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			return "", nil
		}
		return validate("identity tenant", id.TenantID)
	}
}

// NewSubdomainResolver extracts the tenant from the subdomain, optionally
// stripping suffix. The base domain and a bare "www" yield no tenant.
func NewSubdomainResolver(suffix string) Resolver {
	return func(r *http.Request) (string, error) {
		host := r.Host
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}

		// Require subdomain.domain.tld
		if strings.Count(host, ".") < 2 {
			return "", nil
		}

		if suffix != "" && strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			host = strings.TrimSuffix(host, suffix)
		}

		parts := strings.Split(host, ".")
		subdomain := parts[0]
		if subdomain == "www" {
			if len(parts) < 2 {
				return "", nil
			}
			subdomain = parts[1]
		}

		return validate("subdomain", subdomain)
	}
}

// NewCompositeResolver tries resolvers in order, returning the first non-empty result.
// Errors are collected and returned only if no resolver produced an id.
func NewCompositeResolver(resolvers ...Resolver) Resolver {
	return func(r *http.Request) (string, error) {
		var errs []error

		for _, resolve := range resolvers {
			id, err := resolve(r)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if id != "" {
				return id, nil
			}
		}

		if len(errs) > 0 {
			return "", errors.Join(errs...)
		}

		return "", nil
	}
}
