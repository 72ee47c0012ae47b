package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTenantRepo struct {
	tenants map[string]*identity.Tenant
	err     error
}

func newMockTenantRepo() *mockTenantRepo {
	return &mockTenantRepo{tenants: make(map[string]*identity.Tenant)}
}

func (m *mockTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Tenant, error) {
	return m.findStored(id.String())
}

func (m *mockTenantRepo) FindByRef(_ context.Context, ref string) (*identity.Tenant, error) {
	return m.findStored(ref)
}

func (m *mockTenantRepo) findStored(key string) (*identity.Tenant, error) {
	if m.err != nil {
		return nil, m.err
	}
	if tenant, ok := m.tenants[key]; ok {
		copied := *tenant
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockTenantRepo) FindAll(_ context.Context) ([]identity.Tenant, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]identity.Tenant, 0, len(m.tenants))
	for _, tenant := range m.tenants {
		out = append(out, *tenant)
	}
	return out, nil
}

func (m *mockTenantRepo) Save(_ context.Context, tenant *identity.Tenant) error {
	if m.err != nil {
		return m.err
	}
	copied := *tenant
	m.tenants[tenant.ID.String()] = &copied
	return nil
}

type mockPlanRepo struct {
	plans map[string]*identity.Plan
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: make(map[string]*identity.Plan)}
}

func (m *mockPlanRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Plan, error) {
	return m.FindByRef(context.Background(), id.String())
}

func (m *mockPlanRepo) FindByRef(_ context.Context, ref string) (*identity.Plan, error) {
	if plan, ok := m.plans[ref]; ok {
		copied := *plan
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockPlanRepo) FindAll(_ context.Context) ([]identity.Plan, error) {
	out := make([]identity.Plan, 0, len(m.plans))
	for _, plan := range m.plans {
		out = append(out, *plan)
	}
	return out, nil
}

func (m *mockPlanRepo) Save(_ context.Context, plan *identity.Plan) error {
	copied := *plan
	m.plans[plan.ID.String()] = &copied
	return nil
}

type mockProvisioner struct {
	provisioned []string
	err         error
}

func (m *mockProvisioner) EnsureAll(_ context.Context, tenantID string) error {
	if m.err != nil {
		return m.err
	}
	m.provisioned = append(m.provisioned, tenantID)
	return nil
}

type mockInvalidator struct {
	invalidated []string
}

func (m *mockInvalidator) Invalidate(_ context.Context, tenantRef string) {
	m.invalidated = append(m.invalidated, tenantRef)
}

func TestTenantService_SignupProvisionsPartitions(t *testing.T) {
	repo := newMockTenantRepo()
	prov := &mockProvisioner{}
	svc := NewTenantService(repo, newMockPlanRepo(), prov, nil, nil)

	tenant, err := svc.Signup(context.Background(), SignupInput{
		Name:         "Acme Retail",
		BusinessType: "grocery",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Retail", tenant.Name)
	require.Len(t, prov.provisioned, 1)
	assert.Equal(t, tenant.ID.String(), prov.provisioned[0])
	assert.False(t, tenant.HasPlanRef())
}

func TestTenantService_SignupWithPlanRef(t *testing.T) {
	svc := NewTenantService(newMockTenantRepo(), newMockPlanRepo(), &mockProvisioner{}, nil, nil)

	tenant, err := svc.Signup(context.Background(), SignupInput{
		Name:    "Acme Retail",
		PlanRef: "plan-x",
	})
	require.NoError(t, err)
	require.True(t, tenant.HasPlanRef())
	assert.Equal(t, "plan-x", *tenant.PlanRef)
}

func TestTenantService_SignupProvisionFaultPropagates(t *testing.T) {
	prov := &mockProvisioner{err: errors.New("ddl failed")}
	svc := NewTenantService(newMockTenantRepo(), newMockPlanRepo(), prov, nil, nil)

	_, err := svc.Signup(context.Background(), SignupInput{Name: "Acme"})
	assert.Error(t, err)
}

func TestTenantService_AssignPlanInvalidatesCache(t *testing.T) {
	repo := newMockTenantRepo()
	inv := &mockInvalidator{}
	svc := NewTenantService(repo, newMockPlanRepo(), &mockProvisioner{}, inv, nil)

	tenant, err := svc.Signup(context.Background(), SignupInput{Name: "Acme"})
	require.NoError(t, err)

	updated, err := svc.AssignPlan(context.Background(), tenant.ID.String(), "plan-premium")
	require.NoError(t, err)
	require.True(t, updated.HasPlanRef())
	assert.Equal(t, "plan-premium", *updated.PlanRef)
	assert.Equal(t, []string{tenant.ID.String()}, inv.invalidated)
}

func TestTenantService_AssignPlanAllowsDanglingRef(t *testing.T) {
	// The reference is stored as given; resolution later reports
	// PlanMissing instead of failing here
	svc := NewTenantService(newMockTenantRepo(), newMockPlanRepo(), &mockProvisioner{}, nil, nil)

	tenant, err := svc.Signup(context.Background(), SignupInput{Name: "Acme"})
	require.NoError(t, err)

	updated, err := svc.AssignPlan(context.Background(), tenant.ID.String(), "no-such-plan")
	require.NoError(t, err)
	assert.Equal(t, "no-such-plan", *updated.PlanRef)
}

func TestTenantService_AssignPlanUnknownTenant(t *testing.T) {
	svc := NewTenantService(newMockTenantRepo(), newMockPlanRepo(), &mockProvisioner{}, nil, nil)

	_, err := svc.AssignPlan(context.Background(), "ghost", "plan-x")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTenantService_ClearPlan(t *testing.T) {
	inv := &mockInvalidator{}
	svc := NewTenantService(newMockTenantRepo(), newMockPlanRepo(), &mockProvisioner{}, inv, nil)

	tenant, err := svc.Signup(context.Background(), SignupInput{Name: "Acme", PlanRef: "plan-x"})
	require.NoError(t, err)

	updated, err := svc.ClearPlan(context.Background(), tenant.ID.String())
	require.NoError(t, err)
	assert.False(t, updated.HasPlanRef())
	assert.Len(t, inv.invalidated, 1)
}
