package plans

// LimitKey names a numeric cap configured on a plan.
type LimitKey string

// Predefined limit keys.
const (
	LimitAPICallsMonthly  LimitKey = "api_calls_monthly"
	LimitConcurrentUsers  LimitKey = "concurrent_users"
	LimitFileUploadSizeMB LimitKey = "file_upload_size_mb"
	LimitStorageMB        LimitKey = "storage_mb"
	LimitClients          LimitKey = "clients"
	LimitServices         LimitKey = "services"
	LimitEmployees        LimitKey = "employees"
	LimitUsers            LimitKey = "users"
)

// Unlimited marks a limit with no ceiling.
const Unlimited int64 = -1

// Feature is a boolean entitlement of a plan.
type Feature string

// Predefined feature flags.
const (
	FeatureSMSReminders    Feature = "sms_reminders"
	FeatureEmailReminders  Feature = "email_reminders"
	FeatureAPIAccess       Feature = "api_access"
	FeatureOnlineBooking   Feature = "online_booking"
	FeatureInventory       Feature = "inventory"
	FeatureAdvancedReports Feature = "reports_advanced"
	FeatureMultiLocation   Feature = "multi_location"
	FeatureCustomBranding  Feature = "custom_branding"
	FeaturePrioritySupport Feature = "priority_support"
)
