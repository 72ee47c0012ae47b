package entitlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/domain/shared"
)

// mockTenantRepo is a map-backed test implementation of TenantRepository
type mockTenantRepo struct {
	tenants map[string]*identity.Tenant
	err     error
}

func newMockTenantRepo(tenants ...*identity.Tenant) *mockTenantRepo {
	m := &mockTenantRepo{tenants: make(map[string]*identity.Tenant)}
	for _, t := range tenants {
		m.tenants[t.ID.String()] = t
	}
	return m
}

func (m *mockTenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	return m.FindByRef(ctx, id.String())
}

func (m *mockTenantRepo) FindByRef(ctx context.Context, ref string) (*identity.Tenant, error) {
	if m.err != nil {
		return nil, m.err
	}
	if t, ok := m.tenants[ref]; ok {
		return t, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockTenantRepo) FindAll(ctx context.Context) ([]identity.Tenant, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]identity.Tenant, 0, len(m.tenants))
	for _, t := range m.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTenantRepo) Save(ctx context.Context, tenant *identity.Tenant) error {
	if m.err != nil {
		return m.err
	}
	m.tenants[tenant.ID.String()] = tenant
	return nil
}

// mockPlanRepo is a map-backed test implementation of PlanRepository
type mockPlanRepo struct {
	plans map[string]*identity.Plan
	err   error
}

func newMockPlanRepo(plans ...*identity.Plan) *mockPlanRepo {
	m := &mockPlanRepo{plans: make(map[string]*identity.Plan)}
	for _, p := range plans {
		m.plans[p.ID.String()] = p
	}
	return m
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Plan, error) {
	return m.FindByRef(ctx, id.String())
}

func (m *mockPlanRepo) FindByRef(ctx context.Context, ref string) (*identity.Plan, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.plans[ref]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockPlanRepo) FindAll(ctx context.Context) ([]identity.Plan, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]identity.Plan, 0, len(m.plans))
	for _, p := range m.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPlanRepo) Save(ctx context.Context, plan *identity.Plan) error {
	if m.err != nil {
		return m.err
	}
	m.plans[plan.ID.String()] = plan
	return nil
}

// mockCounter is a test implementation of ResourceCounter
type mockCounter struct {
	counts map[string]int64 // keyed by logicalName
	err    error
	calls  int
}

func (m *mockCounter) Count(ctx context.Context, tenantID, logicalName string) (int64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.counts[logicalName], nil
}

// newTestTenant creates a tenant, optionally linked to a plan
func newTestTenant(planRef string) *identity.Tenant {
	tenant, err := identity.NewTenant("Test Tenant")
	if err != nil {
		panic(err)
	}
	if planRef != "" {
		if err := tenant.AssignPlan(planRef); err != nil {
			panic(err)
		}
	}
	return tenant
}

// newTestPlan creates a plan with the given name and ceilings
func newTestPlan(name string, maxProducts, maxUsers int) *identity.Plan {
	plan, err := identity.NewPlan(name, maxProducts, maxUsers)
	if err != nil {
		panic(err)
	}
	return plan
}
