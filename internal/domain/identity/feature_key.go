package identity

import "sort"

// FeatureKey represents a unique identifier for an application feature
type FeatureKey string

// Predefined feature keys for the system
const (
	// Core features
	FeatureDashboard        FeatureKey = "dashboard"
	FeatureInventory        FeatureKey = "inventory"
	FeatureSettings         FeatureKey = "settings"
	FeatureDropdownSettings FeatureKey = "dropdownSettings"

	// Sales features
	FeaturePOS       FeatureKey = "pos"
	FeatureBills     FeatureKey = "bills"
	FeatureCustomers FeatureKey = "customers"
	FeaturePurchases FeatureKey = "purchases"

	// HR features
	FeatureHR         FeatureKey = "hr"
	FeatureCommission FeatureKey = "commission"
	FeatureLeaves     FeatureKey = "leaves"
	FeatureSalary     FeatureKey = "salary"

	// Analytics and finance features
	FeatureReports  FeatureKey = "reports"
	FeatureExpenses FeatureKey = "expenses"

	// Growth features
	FeatureWhatsApp  FeatureKey = "whatsapp"
	FeatureReferrals FeatureKey = "referrals"
)

// FeatureCategory groups related features for display purposes
type FeatureCategory string

const (
	CategoryCore      FeatureCategory = "core"
	CategorySales     FeatureCategory = "sales"
	CategoryHR        FeatureCategory = "hr"
	CategoryAnalytics FeatureCategory = "analytics"
	CategoryFinance   FeatureCategory = "finance"
	CategoryGrowth    FeatureCategory = "growth"
)

// Feature describes a single entry in the static feature catalog.
// Required features are always granted regardless of plan content.
type Feature struct {
	Key      FeatureKey
	Name     string
	Category FeatureCategory
	Required bool
}

// featureCatalog is the closed set of features known to the system.
// This is static configuration, not a database entity.
var featureCatalog = []Feature{
	{Key: FeatureDashboard, Name: "Dashboard", Category: CategoryCore, Required: true},
	{Key: FeatureInventory, Name: "Inventory", Category: CategoryCore},
	{Key: FeatureSettings, Name: "Settings", Category: CategoryCore},
	{Key: FeatureDropdownSettings, Name: "Dropdown Settings", Category: CategoryCore},
	{Key: FeaturePOS, Name: "Point of Sale", Category: CategorySales},
	{Key: FeatureBills, Name: "Bills", Category: CategorySales},
	{Key: FeatureCustomers, Name: "Customers", Category: CategorySales},
	{Key: FeaturePurchases, Name: "Purchases", Category: CategorySales},
	{Key: FeatureHR, Name: "Human Resources", Category: CategoryHR},
	{Key: FeatureCommission, Name: "Commission", Category: CategoryHR},
	{Key: FeatureLeaves, Name: "Leave Management", Category: CategoryHR},
	{Key: FeatureSalary, Name: "Salary", Category: CategoryHR},
	{Key: FeatureReports, Name: "Reports", Category: CategoryAnalytics},
	{Key: FeatureExpenses, Name: "Expenses", Category: CategoryFinance},
	{Key: FeatureWhatsApp, Name: "WhatsApp Messaging", Category: CategoryGrowth},
	{Key: FeatureReferrals, Name: "Referrals", Category: CategoryGrowth},
}

// FeatureCatalog returns the full static feature catalog
func FeatureCatalog() []Feature {
	catalog := make([]Feature, len(featureCatalog))
	copy(catalog, featureCatalog)
	return catalog
}

// AllFeatureKeys returns all defined feature keys
func AllFeatureKeys() []FeatureKey {
	keys := make([]FeatureKey, 0, len(featureCatalog))
	for _, f := range featureCatalog {
		keys = append(keys, f.Key)
	}
	return keys
}

// RequiredFeatureKeys returns the keys of features marked as required
func RequiredFeatureKeys() []FeatureKey {
	var keys []FeatureKey
	for _, f := range featureCatalog {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// IsValidFeatureKey checks if a feature key belongs to the catalog
func IsValidFeatureKey(key FeatureKey) bool {
	for _, f := range featureCatalog {
		if f.Key == key {
			return true
		}
	}
	return false
}

// FeatureByKey returns the catalog entry for a key, if it exists
func FeatureByKey(key FeatureKey) (Feature, bool) {
	for _, f := range featureCatalog {
		if f.Key == key {
			return f, true
		}
	}
	return Feature{}, false
}

// FeatureKeySet is a set of feature keys
type FeatureKeySet map[FeatureKey]struct{}

// NewFeatureKeySet creates a set from the given keys
func NewFeatureKeySet(keys ...FeatureKey) FeatureKeySet {
	set := make(FeatureKeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// AllFeatures returns a set containing every key in the catalog
func AllFeatures() FeatureKeySet {
	return NewFeatureKeySet(AllFeatureKeys()...)
}

// Contains reports whether the set includes the given key
func (s FeatureKeySet) Contains(key FeatureKey) bool {
	_, ok := s[key]
	return ok
}

// Add inserts a key into the set
func (s FeatureKeySet) Add(key FeatureKey) {
	s[key] = struct{}{}
}

// Union returns a new set containing keys from both sets
func (s FeatureKeySet) Union(other FeatureKeySet) FeatureKeySet {
	out := make(FeatureKeySet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Keys returns the set's keys in sorted order
func (s FeatureKeySet) Keys() []FeatureKey {
	keys := make([]FeatureKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of keys in the set
func (s FeatureKeySet) Len() int {
	return len(s)
}
