package ratelimiter_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salonsuite/planguard/pkg/plans"
	"github.com/salonsuite/planguard/pkg/ratelimiter"
	"github.com/salonsuite/planguard/pkg/usage"
)

func TestEngine_BasicPlanExhaustion(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: jan2026}
	store := newMemoryStore(t, clock)
	engine := ratelimiter.NewEngine(newCatalog(t), store, ratelimiter.WithClock(clock.Now))
	ctx := context.Background()
	req := ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanBasic}

	for i := int64(1); i <= 1000; i++ {
		d := engine.Allow(ctx, req)
		require.True(t, d.Allowed, "call %d", i)
		require.Equal(t, i, d.Used)
		require.Equal(t, 1000-i, d.Remaining)
		require.False(t, d.Fallback)
	}

	d := engine.Allow(ctx, req)
	assert.False(t, d.Allowed)
	assert.Equal(t, int64(1000), d.Limit)
	assert.Equal(t, int64(1000), d.Used)
	assert.Equal(t, int64(0), d.Remaining)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), d.ResetAt)
	assert.Equal(t, ratelimiter.RecommendUpgrade, d.Recommendation)
	assert.Equal(t, plans.PlanProfessional, d.UpgradePlanID)
}

func TestEngine_DenialDoesNotCount(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: jan2026}
	store := newMemoryStore(t, clock)
	engine := ratelimiter.NewEngine(newCatalog(t), store, ratelimiter.WithClock(clock.Now))
	ctx := context.Background()
	req := ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanBasic}

	for range 1000 {
		engine.Allow(ctx, req)
	}

	before, err := store.Peek(ctx, "t1")
	require.NoError(t, err)

	for range 5 {
		assert.False(t, engine.Allow(ctx, req).Allowed)
	}

	after, err := store.Peek(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, before.Count, after.Count)
}

func TestEngine_UnlimitedPlan(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: jan2026}
	store := newMemoryStore(t, clock)
	engine := ratelimiter.NewEngine(newCatalog(t), store, ratelimiter.WithClock(clock.Now))
	ctx := context.Background()
	req := ratelimiter.Request{TenantID: "t2", PlanID: plans.PlanEnterprise}

	for range 5000 {
		d := engine.Allow(ctx, req)
		require.True(t, d.Allowed)
		require.True(t, d.Unlimited())
		require.False(t, d.Fallback)
	}

	// Still counted for reporting.
	c, err := store.Peek(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), c.Count)
}

func TestEngine_UnlimitedOverride(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: jan2026}
	store := newMemoryStore(t, clock)
	engine := ratelimiter.NewEngine(newCatalog(t), store, ratelimiter.WithClock(clock.Now))
	ctx := context.Background()
	req := ratelimiter.Request{TenantID: "owner", PlanID: plans.PlanBasic, Unlimited: true}

	for range 1500 {
		d := engine.Allow(ctx, req)
		require.True(t, d.Allowed)
		require.Equal(t, plans.Unlimited, d.Limit)
	}

	c, err := store.Peek(ctx, "owner")
	require.NoError(t, err)
	assert.Zero(t, c.Count)
	assert.Zero(t, store.Len())
}

func TestEngine_UnknownPlanFailsOpen(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: jan2026}
	store := newMemoryStore(t, clock)
	log, buf := newLogger()
	engine := ratelimiter.NewEngine(newCatalog(t), store,
		ratelimiter.WithClock(clock.Now), ratelimiter.WithLogger(log))

	d := engine.Allow(context.Background(), ratelimiter.Request{TenantID: "t3", PlanID: "legacy-gold"})

	assert.True(t, d.Allowed)
	assert.True(t, d.Fallback)
	assert.Equal(t, ratelimiter.ReasonUnknownPlan, d.FallbackReason)
	assert.True(t, d.Unlimited())
	assert.Equal(t, int64(1), d.Used)
	assert.Contains(t, buf.String(), "unknown plan")
}

func TestEngine_ForbiddenLimit(t *testing.T) {
	t.Parallel()

	src := plans.NewInMemSource(map[string]plans.Plan{
		"free": {ID: "free", Rank: 1, Limits: map[plans.LimitKey]int64{plans.LimitAPICallsMonthly: 0}},
	})
	catalog, err := plans.NewCatalog(context.Background(), src)
	require.NoError(t, err)

	clock := &fakeClock{now: jan2026}
	engine := ratelimiter.NewEngine(catalog, newMemoryStore(t, clock), ratelimiter.WithClock(clock.Now))

	d := engine.Allow(context.Background(), ratelimiter.Request{TenantID: "t1", PlanID: "free"})
	assert.False(t, d.Allowed)
	assert.Equal(t, ratelimiter.RecommendContactSupport, d.Recommendation)
	assert.Empty(t, d.UpgradePlanID)
}

func TestEngine_TopTierDenialRecommendsSupport(t *testing.T) {
	t.Parallel()

	src := plans.NewInMemSource(map[string]plans.Plan{
		"starter": {ID: "starter", Rank: 1, Limits: map[plans.LimitKey]int64{plans.LimitAPICallsMonthly: 1}},
		"max":     {ID: "max", Rank: 2, Limits: map[plans.LimitKey]int64{plans.LimitAPICallsMonthly: 2}},
	})
	catalog, err := plans.NewCatalog(context.Background(), src)
	require.NoError(t, err)

	clock := &fakeClock{now: jan2026}
	engine := ratelimiter.NewEngine(catalog, newMemoryStore(t, clock), ratelimiter.WithClock(clock.Now))
	ctx := context.Background()

	for range 2 {
		engine.Allow(ctx, ratelimiter.Request{TenantID: "big", PlanID: "max"})
	}
	d := engine.Allow(ctx, ratelimiter.Request{TenantID: "big", PlanID: "max"})
	assert.False(t, d.Allowed)
	assert.Equal(t, ratelimiter.RecommendContactSupport, d.Recommendation)

	engine.Allow(ctx, ratelimiter.Request{TenantID: "small", PlanID: "starter"})
	d = engine.Allow(ctx, ratelimiter.Request{TenantID: "small", PlanID: "starter"})
	assert.Equal(t, ratelimiter.RecommendUpgrade, d.Recommendation)
	assert.Equal(t, "max", d.UpgradePlanID)
}

func TestEngine_PeriodRollover(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 31, 23, 59, 0, 0, time.UTC)}
	store := newMemoryStore(t, clock)
	engine := ratelimiter.NewEngine(newCatalog(t), store, ratelimiter.WithClock(clock.Now))
	ctx := context.Background()
	req := ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanBasic}

	for range 1000 {
		engine.Allow(ctx, req)
	}
	require.False(t, engine.Allow(ctx, req).Allowed)

	clock.Set(time.Date(2026, 2, 1, 0, 0, 1, 0, time.UTC))

	d := engine.Allow(ctx, req)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(1), d.Used)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), d.ResetAt)
}

func TestEngine_StoreFailuresFailOpen(t *testing.T) {
	t.Parallel()

	errDown := errors.New("connection refused")

	t.Run("peek error", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		store.On("Peek", mock.Anything, "t1").Return(usage.Counter{}, errDown).Once()
		log, buf := newLogger()
		engine := ratelimiter.NewEngine(newCatalog(t), store, ratelimiter.WithLogger(log))

		d := engine.Allow(context.Background(), ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanBasic})

		assert.True(t, d.Allowed)
		assert.True(t, d.Fallback)
		assert.Equal(t, ratelimiter.ReasonStoreUnavailable, d.FallbackReason)
		assert.Contains(t, buf.String(), "usage store unavailable")
		store.AssertExpectations(t)
		store.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
	})

	t.Run("increment error", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		store.On("Peek", mock.Anything, "t1").Return(usage.Counter{TenantID: "t1", Count: 10}, nil).Once()
		store.On("Increment", mock.Anything, "t1").Return(usage.Counter{}, errDown).Once()
		engine := ratelimiter.NewEngine(newCatalog(t), store)

		d := engine.Allow(context.Background(), ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanBasic})

		assert.True(t, d.Allowed)
		assert.True(t, d.Fallback)
		assert.Equal(t, int64(10), d.Used)
		assert.Equal(t, int64(990), d.Remaining)
		store.AssertExpectations(t)
	})

	t.Run("unknown plan keeps its reason when store also fails", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		store.On("Increment", mock.Anything, "t1").Return(usage.Counter{}, errDown).Once()
		engine := ratelimiter.NewEngine(newCatalog(t), store)

		d := engine.Allow(context.Background(), ratelimiter.Request{TenantID: "t1", PlanID: "ghost"})

		assert.True(t, d.Allowed)
		assert.Equal(t, ratelimiter.ReasonUnknownPlan, d.FallbackReason)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		engine := ratelimiter.NewEngine(newCatalog(t), slowStore{}, ratelimiter.WithStoreTimeout(10*time.Millisecond))

		start := time.Now()
		d := engine.Allow(context.Background(), ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanBasic})

		assert.True(t, d.Allowed)
		assert.True(t, d.Fallback)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("panic", func(t *testing.T) {
		t.Parallel()

		engine := ratelimiter.NewEngine(panicCatalog{}, &mockStore{})

		var d ratelimiter.Decision
		require.NotPanics(t, func() {
			d = engine.Allow(context.Background(), ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanBasic})
		})
		assert.True(t, d.Allowed)
		assert.True(t, d.Fallback)
		assert.Equal(t, ratelimiter.ReasonInternalError, d.FallbackReason)
	})

	t.Run("missing tenant", func(t *testing.T) {
		t.Parallel()

		engine := ratelimiter.NewEngine(newCatalog(t), &mockStore{})
		d := engine.Allow(context.Background(), ratelimiter.Request{PlanID: plans.PlanBasic})

		assert.True(t, d.Allowed)
		assert.Equal(t, ratelimiter.ReasonMissingTenant, d.FallbackReason)
	})
}

func TestEngine_ConcurrentOvershootIsBounded(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: jan2026}
	store := newMemoryStore(t, clock)
	engine := ratelimiter.NewEngine(newCatalog(t), store, ratelimiter.WithClock(clock.Now))
	ctx := context.Background()
	req := ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanBasic}

	const workers = 20
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				engine.Allow(ctx, req)
			}
		}()
	}
	wg.Wait()

	c, err := store.Peek(ctx, "t1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, c.Count, int64(1000))
	assert.LessOrEqual(t, c.Count, int64(1000+workers))
}

func TestEngine_Status(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: jan2026}
	store := newMemoryStore(t, clock)
	engine := ratelimiter.NewEngine(newCatalog(t), store, ratelimiter.WithClock(clock.Now))
	ctx := context.Background()
	req := ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanBasic}

	for range 3 {
		engine.Allow(ctx, req)
	}

	d := engine.Status(ctx, req)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(3), d.Used)
	assert.Equal(t, int64(997), d.Remaining)

	again := engine.Status(ctx, req)
	assert.Equal(t, d.Used, again.Used, "status does not count")

	unlimited := engine.Status(ctx, ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanEnterprise})
	assert.True(t, unlimited.Unlimited())
	assert.Equal(t, int64(3), unlimited.Used)
}

func TestEngine_Reset(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: jan2026}
	store := newMemoryStore(t, clock)
	engine := ratelimiter.NewEngine(newCatalog(t), store, ratelimiter.WithClock(clock.Now))
	ctx := context.Background()
	req := ratelimiter.Request{TenantID: "t1", PlanID: plans.PlanBasic}

	for range 1000 {
		engine.Allow(ctx, req)
	}
	require.False(t, engine.Allow(ctx, req).Allowed)

	require.NoError(t, engine.Reset(ctx, "t1"))
	assert.True(t, engine.Allow(ctx, req).Allowed)

	assert.ErrorIs(t, engine.Reset(ctx, ""), ratelimiter.ErrNoTenant)

	failing := &mockStore{}
	failing.On("Reset", mock.Anything, "t1").Return(errors.New("down")).Once()
	err := ratelimiter.NewEngine(newCatalog(t), failing).Reset(ctx, "t1")
	assert.ErrorIs(t, err, ratelimiter.ErrResetFailed)
}
