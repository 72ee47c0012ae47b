package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureCatalog_ClosedSet(t *testing.T) {
	catalog := FeatureCatalog()
	assert.Len(t, catalog, 16)

	seen := map[FeatureKey]bool{}
	for _, f := range catalog {
		assert.False(t, seen[f.Key], "duplicate key %s", f.Key)
		seen[f.Key] = true
		assert.NotEmpty(t, f.Name)
		assert.NotEmpty(t, f.Category)
	}
}

func TestRequiredFeatureKeys(t *testing.T) {
	required := RequiredFeatureKeys()
	require.Len(t, required, 1)
	assert.Equal(t, FeatureDashboard, required[0])
}

func TestIsValidFeatureKey(t *testing.T) {
	assert.True(t, IsValidFeatureKey(FeaturePOS))
	assert.True(t, IsValidFeatureKey(FeatureDropdownSettings))
	assert.False(t, IsValidFeatureKey("payroll"))
	assert.False(t, IsValidFeatureKey(""))
}

func TestFeatureByKey(t *testing.T) {
	f, ok := FeatureByKey(FeatureHR)
	require.True(t, ok)
	assert.Equal(t, "Human Resources", f.Name)
	assert.Equal(t, CategoryHR, f.Category)
	assert.False(t, f.Required)

	_, ok = FeatureByKey("unknown")
	assert.False(t, ok)
}

func TestFeatureKeySet_Operations(t *testing.T) {
	set := NewFeatureKeySet(FeaturePOS, FeatureBills)
	assert.True(t, set.Contains(FeaturePOS))
	assert.False(t, set.Contains(FeatureHR))

	set.Add(FeatureHR)
	assert.True(t, set.Contains(FeatureHR))

	union := set.Union(NewFeatureKeySet(FeatureDashboard, FeaturePOS))
	assert.Equal(t, 4, union.Len())
	assert.True(t, union.Contains(FeatureDashboard))

	// Union must not mutate the receiver
	assert.Equal(t, 3, set.Len())
}

func TestFeatureKeySet_KeysSorted(t *testing.T) {
	set := NewFeatureKeySet(FeatureSettings, FeatureBills, FeatureHR)
	keys := set.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, []FeatureKey{FeatureBills, FeatureHR, FeatureSettings}, keys)
}

func TestAllFeatures_CoversCatalog(t *testing.T) {
	all := AllFeatures()
	assert.Equal(t, len(FeatureCatalog()), all.Len())
	for _, f := range FeatureCatalog() {
		assert.True(t, all.Contains(f.Key))
	}
}
