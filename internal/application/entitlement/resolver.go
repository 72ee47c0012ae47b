package entitlement

import (
	"context"
	"errors"

	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Resolver answers "what plan, if any, applies to this tenant". It performs
// no feature-specific logic; all fallback outcomes are encoded in the
// returned ResolvedPlan, never as errors. The only error return is a store
// fault.
type Resolver struct {
	tenantRepo identity.TenantRepository
	planRepo   identity.PlanRepository
	logger     *zap.Logger
}

// NewResolver creates a new plan Resolver
func NewResolver(tenantRepo identity.TenantRepository, planRepo identity.PlanRepository, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		tenantRepo: tenantRepo,
		planRepo:   planRepo,
		logger:     logger,
	}
}

// Resolve loads the tenant's plan document. Identifier lookups tolerate both
// the structured and raw-string representation (the repositories handle the
// fallback). A tenant without a plan reference resolves to PlanNotAssigned;
// a dangling reference resolves to PlanMissing.
func (r *Resolver) Resolve(ctx context.Context, tenantRef string) (identity.ResolvedPlan, error) {
	tenant, err := r.tenantRepo.FindByRef(ctx, tenantRef)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Unknown tenant is treated like a tenant without plan linkage
			// so downstream decisions stay deterministic.
			r.logger.Warn("Tenant not found during plan resolution",
				zap.String("tenant_ref", tenantRef))
			return identity.NoPlanAssigned(), nil
		}
		r.logger.Error("Failed to load tenant", zap.String("tenant_ref", tenantRef), zap.Error(err))
		return identity.ResolvedPlan{}, err
	}

	if !tenant.HasPlanRef() {
		return identity.NoPlanAssigned(), nil
	}

	plan, err := r.planRepo.FindByRef(ctx, *tenant.PlanRef)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("Tenant references a plan that does not exist",
				zap.String("tenant_ref", tenantRef),
				zap.String("plan_ref", *tenant.PlanRef))
			return identity.MissingPlan(), nil
		}
		r.logger.Error("Failed to load plan", zap.String("plan_ref", *tenant.PlanRef), zap.Error(err))
		return identity.ResolvedPlan{}, err
	}

	return identity.FoundPlan(plan), nil
}
