package identity

import "strings"

// Default feature tiers used when a plan carries no explicit allow-list.
// This heuristic only exists to cover legacy plans created before explicit
// allow-lists were introduced; the explicit path in the evaluator never
// consults it.

// standardTierKeys is the mid-tier feature set for plans named "Standard"
var standardTierKeys = []FeatureKey{
	FeatureDashboard,
	FeatureInventory,
	FeaturePOS,
	FeatureCustomers,
	FeaturePurchases,
	FeatureBills,
	FeatureHR,
	FeatureSettings,
	FeatureDropdownSettings,
}

// minimalTierKeys is the entry-level feature set for any other plan name
var minimalTierKeys = []FeatureKey{
	FeatureDashboard,
	FeatureInventory,
	FeaturePOS,
	FeatureCustomers,
	FeatureSettings,
}

// StandardTierFeatures returns the mid-tier feature set
func StandardTierFeatures() FeatureKeySet {
	return NewFeatureKeySet(standardTierKeys...)
}

// MinimalTierFeatures returns the entry-level feature set
func MinimalTierFeatures() FeatureKeySet {
	return NewFeatureKeySet(minimalTierKeys...)
}

// DefaultTierFor derives a feature set from a plan name using
// case-insensitive substring matching. Names containing "premium" or "pro"
// get the full catalog, names containing "standard" get the mid tier,
// everything else gets the minimal tier.
func DefaultTierFor(planName string) FeatureKeySet {
	name := strings.ToLower(planName)
	switch {
	case strings.Contains(name, "premium"), strings.Contains(name, "pro"):
		return AllFeatures()
	case strings.Contains(name, "standard"):
		return StandardTierFeatures()
	default:
		return MinimalTierFeatures()
	}
}
