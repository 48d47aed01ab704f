package ratelimiter_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salonsuite/planguard/pkg/plans"
	"github.com/salonsuite/planguard/pkg/usage"
)

var jan2026 = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newCatalog(t *testing.T) *plans.Catalog {
	t.Helper()
	catalog, err := plans.NewCatalog(context.Background(), plans.NewInMemSource(plans.DefaultPlans()))
	require.NoError(t, err)
	return catalog
}

func newMemoryStore(t *testing.T, clock *fakeClock) *usage.MemoryStore {
	t.Helper()
	store := usage.NewMemoryStore(usage.WithClock(clock.Now), usage.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	return store
}

func newLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Increment(ctx context.Context, tenantID string) (usage.Counter, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(usage.Counter), args.Error(1)
}

func (m *mockStore) Peek(ctx context.Context, tenantID string) (usage.Counter, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(usage.Counter), args.Error(1)
}

func (m *mockStore) Reset(ctx context.Context, tenantID string) error {
	return m.Called(ctx, tenantID).Error(0)
}

// slowStore blocks until the caller's context is done.
type slowStore struct{}

func (slowStore) Increment(ctx context.Context, _ string) (usage.Counter, error) {
	<-ctx.Done()
	return usage.Counter{}, ctx.Err()
}

func (slowStore) Peek(ctx context.Context, _ string) (usage.Counter, error) {
	<-ctx.Done()
	return usage.Counter{}, ctx.Err()
}

func (slowStore) Reset(ctx context.Context, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

// panicCatalog simulates a catalog bug.
type panicCatalog struct{}

func (panicCatalog) Plan(string) (plans.Plan, bool) { panic("catalog corrupted") }
func (panicCatalog) Next(string) (plans.Plan, bool) { return plans.Plan{}, false }
