// Package tenantstore is the Postgres implementation of tenant.Provider.
//
// Records live in the tenants table created by internal/db/migrations.
// A missing row maps onto tenant.ErrTenantNotFound so that the resolver
// falls back to the default plan; any other failure is ErrStoreFailure.
package tenantstore
