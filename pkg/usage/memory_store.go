package usage

import (
	"context"
	"sync"
	"time"
)

type counterKey struct {
	tenantID string
	period   Period
}

type counter struct {
	count     int64
	startedAt time.Time
}

// MemoryStore implements Store with a process-local map.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[counterKey]*counter

	now             Clock
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// NewMemoryStore creates an in-memory store. Superseded counters are dropped in
// the background once they are older than the previous period.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ms := &MemoryStore{
		counters:        make(map[counterKey]*counter),
		now:             o.now,
		cleanupInterval: o.cleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	if ms.cleanupInterval > 0 {
		go ms.cleanup()
	}

	return ms
}

func (ms *MemoryStore) Increment(_ context.Context, tenantID string) (Counter, error) {
	if tenantID == "" {
		return Counter{}, ErrInvalidTenantID
	}

	now := ms.now().UTC()
	key := counterKey{tenantID: tenantID, period: PeriodOf(now)}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	c, exists := ms.counters[key]
	if !exists {
		c = &counter{startedAt: now}
		ms.counters[key] = c
	}
	c.count++

	return Counter{
		TenantID:        tenantID,
		Period:          key.period,
		Count:           c.count,
		WindowStartedAt: c.startedAt,
	}, nil
}

func (ms *MemoryStore) Peek(_ context.Context, tenantID string) (Counter, error) {
	if tenantID == "" {
		return Counter{}, ErrInvalidTenantID
	}

	key := counterKey{tenantID: tenantID, period: PeriodOf(ms.now())}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	snapshot := Counter{
		TenantID:        tenantID,
		Period:          key.period,
		WindowStartedAt: key.period.Start(),
	}
	if c, exists := ms.counters[key]; exists {
		snapshot.Count = c.count
		snapshot.WindowStartedAt = c.startedAt
	}

	return snapshot, nil
}

func (ms *MemoryStore) Reset(_ context.Context, tenantID string) error {
	if tenantID == "" {
		return ErrInvalidTenantID
	}

	key := counterKey{tenantID: tenantID, period: PeriodOf(ms.now())}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if c, exists := ms.counters[key]; exists {
		c.count = 0
	}
	return nil
}

// Len returns the number of counters currently held, including superseded ones.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.counters)
}

func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.RemoveSuperseded()
		case <-ms.stopCleanup:
			return
		}
	}
}

// RemoveSuperseded drops counters older than the previous period.
// The previous period is kept so late reports can still read it.
func (ms *MemoryStore) RemoveSuperseded() {
	horizon := PeriodOf(ms.now()).Prev()

	ms.mu.Lock()
	defer ms.mu.Unlock()

	for key := range ms.counters {
		if key.period.Before(horizon) {
			delete(ms.counters, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() {
	ms.closeOnce.Do(func() {
		close(ms.stopCleanup)
	})
}
