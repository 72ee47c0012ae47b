package identity

import (
	"context"

	"github.com/retailcore/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// PartitionProvisioner creates the per-tenant partitions at signup
type PartitionProvisioner interface {
	EnsureAll(ctx context.Context, tenantID string) error
}

// EntitlementInvalidator drops cached feature snapshots when a tenant's
// plan assignment changes
type EntitlementInvalidator interface {
	Invalidate(ctx context.Context, tenantRef string)
}

// TenantService handles tenant management operations
type TenantService struct {
	tenantRepo  identity.TenantRepository
	planRepo    identity.PlanRepository
	provisioner PartitionProvisioner
	invalidator EntitlementInvalidator
	logger      *zap.Logger
}

// NewTenantService creates a new tenant service. The invalidator is
// optional; without one, cached entitlements age out by TTL alone.
func NewTenantService(
	tenantRepo identity.TenantRepository,
	planRepo identity.PlanRepository,
	provisioner PartitionProvisioner,
	invalidator EntitlementInvalidator,
	logger *zap.Logger,
) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{
		tenantRepo:  tenantRepo,
		planRepo:    planRepo,
		provisioner: provisioner,
		invalidator: invalidator,
		logger:      logger,
	}
}

// SignupInput contains input for tenant signup
type SignupInput struct {
	Name         string
	BusinessType string
	PlanRef      string
}

// Signup creates a tenant and provisions its partitions. A plan reference
// is optional: tenants without one run on the permissive feature fallback
// until a plan is assigned.
func (s *TenantService) Signup(ctx context.Context, input SignupInput) (*identity.Tenant, error) {
	tenant, err := identity.NewTenant(input.Name)
	if err != nil {
		return nil, err
	}
	if input.BusinessType != "" {
		tenant.SetBusinessType(input.BusinessType)
	}
	if input.PlanRef != "" {
		if err := tenant.AssignPlan(input.PlanRef); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	if err := s.provisioner.EnsureAll(ctx, tenant.ID.String()); err != nil {
		s.logger.Error("Failed to provision tenant partitions",
			zap.String("tenant_id", tenant.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Tenant signed up",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("name", tenant.Name))

	return tenant, nil
}

// Get returns a tenant by an opaque reference
func (s *TenantService) Get(ctx context.Context, ref string) (*identity.Tenant, error) {
	return s.tenantRepo.FindByRef(ctx, ref)
}

// List returns all tenants
func (s *TenantService) List(ctx context.Context) ([]identity.Tenant, error) {
	return s.tenantRepo.FindAll(ctx)
}

// AssignPlan sets a tenant's plan reference. The reference is stored as
// given: it is allowed to dangle, and the resolver treats a dangling
// reference as the PlanMissing state rather than rejecting it here.
func (s *TenantService) AssignPlan(ctx context.Context, tenantRef, planRef string) (*identity.Tenant, error) {
	tenant, err := s.tenantRepo.FindByRef(ctx, tenantRef)
	if err != nil {
		return nil, err
	}

	if err := tenant.AssignPlan(planRef); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, tenantRef)
	}

	s.logger.Info("Plan assigned",
		zap.String("tenant_ref", tenantRef),
		zap.String("plan_ref", planRef))

	return tenant, nil
}

// ClearPlan removes a tenant's plan reference, dropping it back to the
// permissive feature fallback and conservative limit fallback
func (s *TenantService) ClearPlan(ctx context.Context, tenantRef string) (*identity.Tenant, error) {
	tenant, err := s.tenantRepo.FindByRef(ctx, tenantRef)
	if err != nil {
		return nil, err
	}

	tenant.ClearPlan()
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, tenantRef)
	}

	return tenant, nil
}
