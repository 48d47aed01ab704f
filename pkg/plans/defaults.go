package plans

// Built-in plan IDs.
const (
	PlanBasic        = "basic"
	PlanProfessional = "professional"
	PlanPremium      = "premium"
	PlanEnterprise   = "enterprise"
)

// DefaultPlans returns the built-in salon plan table.
func DefaultPlans() map[string]Plan {
	return map[string]Plan{
		PlanBasic: {
			ID:           PlanBasic,
			Name:         "Basic",
			Description:  "Single location salons getting started",
			PriceMonthly: 2900,
			Currency:     "USD",
			Rank:         1,
			Public:       true,
			TrialDays:    14,
			Features: []Feature{
				FeatureEmailReminders,
				FeatureOnlineBooking,
			},
			Limits: map[LimitKey]int64{
				LimitAPICallsMonthly:  1000,
				LimitConcurrentUsers:  2,
				LimitFileUploadSizeMB: 5,
				LimitStorageMB:        500,
				LimitClients:          100,
				LimitServices:         20,
				LimitEmployees:        3,
				LimitUsers:            2,
			},
		},
		PlanProfessional: {
			ID:           PlanProfessional,
			Name:         "Professional",
			Description:  "Growing salons with a full team",
			PriceMonthly: 7900,
			Currency:     "USD",
			Rank:         2,
			Public:       true,
			TrialDays:    14,
			Features: []Feature{
				FeatureEmailReminders,
				FeatureSMSReminders,
				FeatureOnlineBooking,
				FeatureInventory,
				FeatureAPIAccess,
			},
			Limits: map[LimitKey]int64{
				LimitAPICallsMonthly:  10000,
				LimitConcurrentUsers:  10,
				LimitFileUploadSizeMB: 20,
				LimitStorageMB:        5000,
				LimitClients:          1000,
				LimitServices:         100,
				LimitEmployees:        15,
				LimitUsers:            10,
			},
		},
		PlanPremium: {
			ID:           PlanPremium,
			Name:         "Premium",
			Description:  "Multi-location salons and spas",
			PriceMonthly: 14900,
			Currency:     "USD",
			Rank:         3,
			Public:       true,
			Features: []Feature{
				FeatureEmailReminders,
				FeatureSMSReminders,
				FeatureOnlineBooking,
				FeatureInventory,
				FeatureAPIAccess,
				FeatureAdvancedReports,
				FeatureMultiLocation,
			},
			Limits: map[LimitKey]int64{
				LimitAPICallsMonthly:  50000,
				LimitConcurrentUsers:  50,
				LimitFileUploadSizeMB: 50,
				LimitStorageMB:        20000,
				LimitClients:          Unlimited,
				LimitServices:         Unlimited,
				LimitEmployees:        50,
				LimitUsers:            50,
			},
		},
		PlanEnterprise: {
			ID:           PlanEnterprise,
			Name:         "Enterprise",
			Description:  "Chains and franchises",
			PriceMonthly: 39900,
			Currency:     "USD",
			Rank:         4,
			Features: []Feature{
				FeatureEmailReminders,
				FeatureSMSReminders,
				FeatureOnlineBooking,
				FeatureInventory,
				FeatureAPIAccess,
				FeatureAdvancedReports,
				FeatureMultiLocation,
				FeatureCustomBranding,
				FeaturePrioritySupport,
			},
			Limits: map[LimitKey]int64{
				LimitAPICallsMonthly:  Unlimited,
				LimitConcurrentUsers:  Unlimited,
				LimitFileUploadSizeMB: 200,
				LimitStorageMB:        Unlimited,
				LimitClients:          Unlimited,
				LimitServices:         Unlimited,
				LimitEmployees:        Unlimited,
				LimitUsers:            Unlimited,
			},
		},
	}
}
