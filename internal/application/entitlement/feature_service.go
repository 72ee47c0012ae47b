package entitlement

import (
	"context"

	"github.com/retailcore/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// FeatureService derives the effective set of allowed feature keys for a
// tenant from its resolved plan.
type FeatureService struct {
	resolver *Resolver
	logger   *zap.Logger
}

// NewFeatureService creates a new FeatureService
func NewFeatureService(resolver *Resolver, logger *zap.Logger) *FeatureService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeatureService{
		resolver: resolver,
		logger:   logger,
	}
}

// AllowedFeatures returns the effective feature set for a tenant.
//
// The fallback tiers are deliberately kept as distinct branches so each can
// be audited and tightened independently:
//   - no plan assigned or dangling reference: every known key is allowed,
//     a business decision to avoid locking tenants out over broken plan
//     linkage;
//   - explicit allow-list: returned verbatim plus required features;
//   - empty allow-list: a default tier derived from the plan name, covering
//     legacy plans created before allow-lists existed.
func (s *FeatureService) AllowedFeatures(ctx context.Context, tenantRef string) (identity.FeatureKeySet, error) {
	resolved, err := s.resolver.Resolve(ctx, tenantRef)
	if err != nil {
		return nil, err
	}

	switch resolved.State {
	case identity.PlanNotAssigned, identity.PlanMissing:
		// Permissive fallback: effectively unenforced until plan linkage
		// is repaired.
		s.logger.Debug("No resolvable plan, granting full feature set",
			zap.String("tenant_ref", tenantRef),
			zap.String("resolution", string(resolved.State)))
		return identity.AllFeatures(), nil

	case identity.PlanFound:
		plan := resolved.Plan
		if plan.HasExplicitFeatures() {
			required := identity.NewFeatureKeySet(identity.RequiredFeatureKeys()...)
			return plan.AllowedFeatures.Union(required), nil
		}
		// Legacy plan without an allow-list: fall back to the name-based
		// default tier.
		s.logger.Debug("Plan has no explicit allow-list, using default tier",
			zap.String("tenant_ref", tenantRef),
			zap.String("plan_name", plan.Name))
		return identity.DefaultTierFor(plan.Name), nil

	default:
		return identity.AllFeatures(), nil
	}
}

// HasFeature reports whether a feature is allowed for the tenant. It is
// plain set membership over AllowedFeatures.
func (s *FeatureService) HasFeature(ctx context.Context, tenantRef string, key identity.FeatureKey) (bool, error) {
	allowed, err := s.AllowedFeatures(ctx, tenantRef)
	if err != nil {
		return false, err
	}
	return allowed.Contains(key), nil
}
