package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	tenant, err := NewTenant("Acme Retail")
	require.NoError(t, err)
	assert.Equal(t, "Acme Retail", tenant.Name)
	assert.Equal(t, TenantStatusActive, tenant.Status)
	assert.False(t, tenant.HasPlanRef())
	assert.Nil(t, tenant.BusinessType)
}

func TestNewTenant_Validation(t *testing.T) {
	_, err := NewTenant("")
	assert.Error(t, err)
}

func TestTenant_AssignAndClearPlan(t *testing.T) {
	tenant, err := NewTenant("Acme Retail")
	require.NoError(t, err)

	err = tenant.AssignPlan("plan-123")
	require.NoError(t, err)
	assert.True(t, tenant.HasPlanRef())
	assert.Equal(t, "plan-123", *tenant.PlanRef)

	tenant.ClearPlan()
	assert.False(t, tenant.HasPlanRef())
}

func TestTenant_AssignPlan_Empty(t *testing.T) {
	tenant, err := NewTenant("Acme Retail")
	require.NoError(t, err)

	err = tenant.AssignPlan("")
	assert.Error(t, err)
}

func TestTenant_StatusTransitions(t *testing.T) {
	tenant, err := NewTenant("Acme Retail")
	require.NoError(t, err)

	assert.Error(t, tenant.Activate(), "activating an active tenant should fail")

	require.NoError(t, tenant.Deactivate())
	assert.False(t, tenant.IsActive())
	assert.Error(t, tenant.Deactivate())

	require.NoError(t, tenant.Activate())
	assert.True(t, tenant.IsActive())
}

func TestTenant_SetBusinessType(t *testing.T) {
	tenant, err := NewTenant("Acme Retail")
	require.NoError(t, err)

	tenant.SetBusinessType("pharmacy")
	require.NotNil(t, tenant.BusinessType)
	assert.Equal(t, "pharmacy", *tenant.BusinessType)

	tenant.SetBusinessType("")
	assert.Nil(t, tenant.BusinessType)
}
