// Package plans holds the immutable catalog of subscription tiers: their feature
// entitlements and numeric resource caps.
//
// Plans are loaded once at startup from a Source and never change at runtime.
// Limits use Unlimited (-1) for "no ceiling" and 0 for "forbidden"; a key that is
// absent from a plan is "not configured". Feature lookups default to deny, limit
// lookups report ok=false so callers can apply their own default.
//
// Basic usage:
//
//	src := plans.NewFileSource("config/plans.yaml")
//	catalog, err := plans.NewCatalog(ctx, src)
//	if err != nil {
//	    // configuration error, stop startup
//	}
//
//	if limit, ok := catalog.Limit("basic", plans.LimitAPICallsMonthly); ok && limit != plans.Unlimited {
//	    // enforce limit
//	}
//
//	if catalog.HasFeature(planID, plans.FeatureSMSReminders) {
//	    // schedule reminder
//	}
package plans
