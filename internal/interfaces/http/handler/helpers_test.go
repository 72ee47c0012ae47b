package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/application/entitlement"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/infrastructure/persistence/partition"
	"github.com/retailcore/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
)

type fakeTenantRepo struct {
	tenants map[string]*identity.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[string]*identity.Tenant)}
}

func (f *fakeTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Tenant, error) {
	return f.lookup(id.String())
}

func (f *fakeTenantRepo) FindByRef(_ context.Context, ref string) (*identity.Tenant, error) {
	return f.lookup(ref)
}

func (f *fakeTenantRepo) lookup(key string) (*identity.Tenant, error) {
	if tenant, ok := f.tenants[key]; ok {
		copied := *tenant
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeTenantRepo) FindAll(_ context.Context) ([]identity.Tenant, error) {
	out := make([]identity.Tenant, 0, len(f.tenants))
	for _, tenant := range f.tenants {
		out = append(out, *tenant)
	}
	return out, nil
}

func (f *fakeTenantRepo) Save(_ context.Context, tenant *identity.Tenant) error {
	copied := *tenant
	f.tenants[tenant.ID.String()] = &copied
	return nil
}

type fakePlanRepo struct {
	plans map[string]*identity.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]*identity.Plan)}
}

func (f *fakePlanRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Plan, error) {
	return f.FindByRef(context.Background(), id.String())
}

func (f *fakePlanRepo) FindByRef(_ context.Context, ref string) (*identity.Plan, error) {
	if plan, ok := f.plans[ref]; ok {
		copied := *plan
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakePlanRepo) FindAll(_ context.Context) ([]identity.Plan, error) {
	out := make([]identity.Plan, 0, len(f.plans))
	for _, plan := range f.plans {
		out = append(out, *plan)
	}
	return out, nil
}

func (f *fakePlanRepo) Save(_ context.Context, plan *identity.Plan) error {
	copied := *plan
	f.plans[plan.ID.String()] = &copied
	return nil
}

// fakeDocStore implements the partition accessor slices the services use
type fakeDocStore struct {
	docs map[string][]partition.Document
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{docs: make(map[string][]partition.Document)}
}

func (f *fakeDocStore) key(tenantID, logical string) string { return tenantID + "/" + logical }

func (f *fakeDocStore) Insert(_ context.Context, tenantID, logicalName, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	k := f.key(tenantID, logicalName)
	f.docs[k] = append(f.docs[k], partition.Document{ID: id, Doc: raw})
	return nil
}

func (f *fakeDocStore) InsertBatch(_ context.Context, tenantID, logicalName string, docs []partition.Document) error {
	k := f.key(tenantID, logicalName)
	f.docs[k] = append(f.docs[k], docs...)
	return nil
}

func (f *fakeDocStore) List(_ context.Context, tenantID, logicalName string, _ int) ([]partition.Document, error) {
	return f.docs[f.key(tenantID, logicalName)], nil
}

func (f *fakeDocStore) Count(_ context.Context, tenantID, logicalName string) (int64, error) {
	return int64(len(f.docs[f.key(tenantID, logicalName)])), nil
}

func (f *fakeDocStore) seed(t *testing.T, tenantID, logicalName string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.Insert(context.Background(), tenantID, logicalName,
			uuid.New().String(), map[string]string{"seed": "true"}))
	}
}

// entitlementStack wires real resolver, feature, and limit services over
// the fakes
type entitlementStack struct {
	tenantRepo *fakeTenantRepo
	planRepo   *fakePlanRepo
	store      *fakeDocStore
	resolver   *entitlement.Resolver
	features   *entitlement.FeatureService
	limits     *entitlement.LimitService
}

func newEntitlementStack() *entitlementStack {
	tenantRepo := newFakeTenantRepo()
	planRepo := newFakePlanRepo()
	store := newFakeDocStore()
	resolver := entitlement.NewResolver(tenantRepo, planRepo, nil)
	return &entitlementStack{
		tenantRepo: tenantRepo,
		planRepo:   planRepo,
		store:      store,
		resolver:   resolver,
		features:   entitlement.NewFeatureService(resolver, nil),
		limits:     entitlement.NewLimitService(resolver, store, nil),
	}
}

func (s *entitlementStack) addTenant(t *testing.T, planRef string) *identity.Tenant {
	t.Helper()
	tenant, err := identity.NewTenant("Test Tenant")
	require.NoError(t, err)
	if planRef != "" {
		require.NoError(t, tenant.AssignPlan(planRef))
	}
	require.NoError(t, s.tenantRepo.Save(context.Background(), tenant))
	return tenant
}

func (s *entitlementStack) addPlan(t *testing.T, name string, maxProducts, maxUsers int, features ...identity.FeatureKey) *identity.Plan {
	t.Helper()
	plan, err := identity.NewPlan(name, maxProducts, maxUsers)
	require.NoError(t, err)
	if len(features) > 0 {
		require.NoError(t, plan.SetAllowedFeatures(features))
	}
	require.NoError(t, s.planRepo.Save(context.Background(), plan))
	return plan
}

func (s *entitlementStack) featureMW() middleware.FeatureMiddlewareConfig {
	return middleware.FeatureMiddlewareConfig{Accessor: s.features}
}

// setTenant is a route-level helper that injects the tenant context the
// way the tenant middleware would
func setTenant(tenantID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tenantID != "" {
			c.Set(middleware.TenantIDKey, tenantID)
		}
	}
}

func decodeBody(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
