package tenant

import (
	"context"
	"fmt"
	"sync"
)

// MemoryProvider is an in-process tenant store for development and tests.
type MemoryProvider struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryProvider returns a provider seeded with records.
func NewMemoryProvider(records ...Record) *MemoryProvider {
	p := &MemoryProvider{records: make(map[string]Record, len(records))}
	for _, rec := range records {
		p.records[rec.ID] = rec
	}
	return p
}

// GetRecord implements Provider.
func (p *MemoryProvider) GetRecord(_ context.Context, id string) (*Record, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	rec, ok := p.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, id)
	}
	return &rec, nil
}

// Put inserts or replaces a record.
func (p *MemoryProvider) Put(rec Record) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records[rec.ID] = rec
}

// Upsert validates the id and stores rec. An empty status is stored as active.
func (p *MemoryProvider) Upsert(_ context.Context, rec Record) error {
	if !ValidID(rec.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, rec.ID)
	}
	if rec.Status == StatusUnknown {
		rec.Status = StatusActive
	}
	p.Put(rec)
	return nil
}

// Delete removes a record.
func (p *MemoryProvider) Delete(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.records, id)
}
