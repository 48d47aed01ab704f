// Package api exposes the plan enforcement components over HTTP.
//
// Tenant routes under /api/v1 resolve the tenant and require one. All of them
// except /quota count the call against the monthly API quota before the
// handler runs. Admin routes sit behind a static bearer token.
package api
