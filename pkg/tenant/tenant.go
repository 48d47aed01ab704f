package tenant

import "context"

// Status is the lifecycle state reported by the tenant store.
// It is carried into the request context but not enforced here.
type Status string

const (
	StatusActive    Status = "active"
	StatusTrial     Status = "trial"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
	StatusUnknown   Status = ""
)

// Record is what the tenant store knows about a tenant.
type Record struct {
	ID        string `json:"id"`
	PlanID    string `json:"plan_id"`
	Unlimited bool   `json:"unlimited"`
	Status    Status `json:"status"`
}

// Provider loads tenant records from the tenant store.
type Provider interface {
	// GetRecord returns ErrTenantNotFound if no tenant matches id.
	GetRecord(ctx context.Context, id string) (*Record, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(ctx context.Context, id string) (*Record, error)

// GetRecord calls f.
func (f ProviderFunc) GetRecord(ctx context.Context, id string) (*Record, error) {
	return f(ctx, id)
}

// Source names the step of the resolution chain that produced the tenant id.
type Source string

const (
	SourceHeader    Source = "header"
	SourceSubdomain Source = "subdomain"
	SourceIdentity  Source = "identity"
	SourceDefault   Source = "default"
)

// Context is the request-scoped tenant view every downstream component reads.
// It is computed once per request and never mutated afterwards.
type Context struct {
	TenantID  string `json:"tenant_id"`
	PlanID    string `json:"plan_id"`
	Unlimited bool   `json:"unlimited"`
	Status    Status `json:"status"`
	Source    Source `json:"source"`
	Defaulted bool   `json:"defaulted"`
}

// Identity is the canonical authenticated subject attached upstream by the
// authorization layer. Every token or session shape is normalized into this
// single struct before tenant resolution runs.
type Identity struct {
	Subject   string
	TenantID  string
	Unlimited bool // platform owner or super admin bypass
}
