package plans_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsuite/planguard/pkg/plans"
)

func newDefaultCatalog(t *testing.T) *plans.Catalog {
	t.Helper()

	catalog, err := plans.NewCatalog(context.Background(), plans.NewInMemSource(plans.DefaultPlans()))
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("loads default plans", func(t *testing.T) {
		t.Parallel()

		catalog := newDefaultCatalog(t)
		ids := make([]string, 0, 4)
		for _, p := range catalog.Plans() {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []string{plans.PlanBasic, plans.PlanProfessional, plans.PlanPremium, plans.PlanEnterprise}, ids)
	})

	t.Run("source error", func(t *testing.T) {
		t.Parallel()

		src := plans.SourceFunc(func(context.Context) (map[string]plans.Plan, error) {
			return nil, errors.New("disk on fire")
		})

		catalog, err := plans.NewCatalog(context.Background(), src)
		assert.ErrorIs(t, err, plans.ErrFailedToLoadPlans)
		assert.Nil(t, catalog)
	})

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()

		_, err := plans.NewCatalog(context.Background(), plans.NewInMemSource(nil))
		assert.ErrorIs(t, err, plans.ErrNoPlans)
	})

	invalid := map[string]map[string]plans.Plan{
		"mismatched id":  {"basic": {ID: "pro"}},
		"bad id":         {"Bad Plan": {ID: "Bad Plan"}},
		"duplicate rank": {"a": {ID: "a", Rank: 1}, "b": {ID: "b", Rank: 1}},
		"negative trial": {"a": {ID: "a", TrialDays: -1}},
		"negative price": {"a": {ID: "a", PriceMonthly: -100}},
		"limit below -1": {"a": {ID: "a", Limits: map[plans.LimitKey]int64{plans.LimitClients: -2}}},
	}
	for name, table := range invalid {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := plans.NewCatalog(context.Background(), plans.NewInMemSource(table))
			assert.ErrorIs(t, err, plans.ErrInvalidPlanConfiguration)
		})
	}

	t.Run("source copy is isolated from caller", func(t *testing.T) {
		t.Parallel()

		table := map[string]plans.Plan{
			"basic": {ID: "basic", Limits: map[plans.LimitKey]int64{plans.LimitClients: 10}},
		}
		src := plans.NewInMemSource(table)
		table["basic"].Limits[plans.LimitClients] = 99

		catalog, err := plans.NewCatalog(context.Background(), src)
		require.NoError(t, err)

		limit, ok := catalog.Limit("basic", plans.LimitClients)
		assert.True(t, ok)
		assert.Equal(t, int64(10), limit)
	})
}

func TestCatalog_Plan(t *testing.T) {
	t.Parallel()

	catalog := newDefaultCatalog(t)

	p, ok := catalog.Plan(plans.PlanBasic)
	require.True(t, ok)
	assert.Equal(t, "Basic", p.Name)

	_, ok = catalog.Plan("gold")
	assert.False(t, ok)

	assert.NoError(t, catalog.Verify(plans.PlanPremium))
	assert.ErrorIs(t, catalog.Verify("gold"), plans.ErrPlanNotFound)

	// Returned plans are copies.
	p.Limits[plans.LimitClients] = 1
	limit, _ := catalog.Limit(plans.PlanBasic, plans.LimitClients)
	assert.Equal(t, int64(100), limit)
}

func TestCatalog_Limit(t *testing.T) {
	t.Parallel()

	catalog, err := plans.NewCatalog(context.Background(), plans.NewInMemSource(map[string]plans.Plan{
		"basic": {
			ID:   "basic",
			Rank: 1,
			Limits: map[plans.LimitKey]int64{
				plans.LimitAPICallsMonthly: 1000,
				plans.LimitEmployees:       0,
				plans.LimitClients:         plans.Unlimited,
			},
		},
	}))
	require.NoError(t, err)

	tests := []struct {
		name   string
		planID string
		key    plans.LimitKey
		limit  int64
		ok     bool
	}{
		{"numeric cap", "basic", plans.LimitAPICallsMonthly, 1000, true},
		{"zero forbids", "basic", plans.LimitEmployees, 0, true},
		{"unlimited sentinel", "basic", plans.LimitClients, plans.Unlimited, true},
		{"not configured", "basic", plans.LimitStorageMB, 0, false},
		{"unknown plan", "gold", plans.LimitClients, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limit, ok := catalog.Limit(tt.planID, tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestCatalog_HasFeature(t *testing.T) {
	t.Parallel()

	catalog := newDefaultCatalog(t)

	assert.True(t, catalog.HasFeature(plans.PlanProfessional, plans.FeatureSMSReminders))
	assert.False(t, catalog.HasFeature(plans.PlanBasic, plans.FeatureSMSReminders))
	assert.False(t, catalog.HasFeature(plans.PlanBasic, plans.Feature("teleportation")))
	assert.False(t, catalog.HasFeature("gold", plans.FeatureEmailReminders))
}

func TestCatalog_CanUpgrade(t *testing.T) {
	t.Parallel()

	catalog := newDefaultCatalog(t)

	assert.True(t, catalog.CanUpgrade(plans.PlanBasic, plans.PlanProfessional))
	assert.True(t, catalog.CanUpgrade(plans.PlanBasic, plans.PlanEnterprise))
	assert.False(t, catalog.CanUpgrade(plans.PlanPremium, plans.PlanBasic))
	assert.False(t, catalog.CanUpgrade(plans.PlanBasic, plans.PlanBasic))
	assert.False(t, catalog.CanUpgrade("gold", plans.PlanBasic))
	assert.False(t, catalog.CanUpgrade(plans.PlanBasic, "gold"))
}

func TestCatalog_Tiers(t *testing.T) {
	t.Parallel()

	catalog := newDefaultCatalog(t)

	next, ok := catalog.Next(plans.PlanBasic)
	require.True(t, ok)
	assert.Equal(t, plans.PlanProfessional, next.ID)

	_, ok = catalog.Next(plans.PlanEnterprise)
	assert.False(t, ok)
	_, ok = catalog.Next("gold")
	assert.False(t, ok)

	assert.True(t, catalog.IsTopTier(plans.PlanEnterprise))
	assert.False(t, catalog.IsTopTier(plans.PlanBasic))

	lowest, ok := catalog.LowestPaid()
	require.True(t, ok)
	assert.Equal(t, plans.PlanBasic, lowest.ID)
}
