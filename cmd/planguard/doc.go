// Command planguard serves plan based API quotas and resource limits for
// multi-tenant salon software.
//
// Configuration comes from the environment (and ./.env when present):
//
//	APP_ENV                  development, staging or production
//	HTTP_ADDR                listen address, default :8080
//	ADMIN_TOKEN              bearer token for /admin routes; unset disables them
//	PLANS_FILE               YAML plan table; built-in plans when unset
//	TENANT_HEADER            header carrying the tenant id, default X-Tenant-ID
//	TENANT_SUBDOMAIN_SUFFIX  enables tenant.<suffix> host resolution
//	TENANT_DEFAULT_ID        tenant used when none is resolved
//	REDIS_URL                shared usage counters; in-memory when unset
//	PG_CONN_URL              tenant records; in-memory when unset
//	RATELIMIT_STORE_TIMEOUT  per call usage store budget, default 50ms
//	LOG_LEVEL, LOG_FORMAT    override the environment logging preset
package main
