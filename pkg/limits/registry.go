package limits

import (
	"context"
	"fmt"
)

// CounterFunc returns the current number of resource instances a tenant owns.
// Typically a COUNT query against the resource table.
type CounterFunc func(ctx context.Context, tenantID string) (int64, error)

// CounterRegistry maps a Resource to its CounterFunc.
// Not thread-safe: register all counters at startup only.
type CounterRegistry map[Resource]CounterFunc

// NewRegistry returns a new, empty CounterRegistry.
func NewRegistry() CounterRegistry {
	return make(CounterRegistry)
}

// Register sets or replaces the CounterFunc for the given resource. Panics if fn is nil.
func (r CounterRegistry) Register(res Resource, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("limits: CounterFunc for resource %q cannot be nil", res))
	}
	r[res] = fn
}

// Count runs the registered counter for res.
func (r CounterRegistry) Count(ctx context.Context, tenantID string, res Resource) (int64, error) {
	fn, ok := r[res]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoCounterRegistered, res)
	}
	n, err := fn(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrFailedToCountResourceUsage, res, err)
	}
	return n, nil
}
