package entitlement

import (
	"context"

	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ResourceCounter recomputes live resource counts from a tenant's partition.
// Counts must never come from a cache; a limit check always reflects the
// store at call time.
type ResourceCounter interface {
	Count(ctx context.Context, tenantID, logicalName string) (int64, error)
}

// LimitDecision is the structured outcome of a resource limit check.
// A denial is a normal negative result, not an error: it carries enough
// data for the caller to render an actionable message.
type LimitDecision struct {
	Allowed      bool
	Kind         identity.ResourceKind
	CurrentCount int64
	MaxCount     int64
	PlanName     string
}

// LimitGuard decides whether a tenant may add more resources of a kind.
// The default implementation checks and lets the caller act, accepting the
// race between concurrent requests for the same tenant; a stricter variant
// enforcing the ceiling atomically against the store can be substituted
// without touching callers.
type LimitGuard interface {
	CheckLimit(ctx context.Context, tenantRef string, kind identity.ResourceKind, additional int64) (LimitDecision, error)
}

// LimitService is the default count-then-act LimitGuard
type LimitService struct {
	resolver *Resolver
	counter  ResourceCounter
	logger   *zap.Logger
}

// NewLimitService creates a new LimitService
func NewLimitService(resolver *Resolver, counter ResourceCounter, logger *zap.Logger) *LimitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LimitService{
		resolver: resolver,
		counter:  counter,
		logger:   logger,
	}
}

// CheckLimit verifies that the tenant can add `additional` resources of the
// given kind. additional defaults to 1; bulk imports pass the full import
// size so the ceiling cannot be bypassed one item at a time.
//
// When no plan resolves, conservative fallback ceilings apply. This is
// intentionally asymmetric with the permissive feature fallback.
func (s *LimitService) CheckLimit(ctx context.Context, tenantRef string, kind identity.ResourceKind, additional int64) (LimitDecision, error) {
	if !kind.IsValid() {
		return LimitDecision{}, shared.NewDomainError("INVALID_RESOURCE_KIND", "Unknown resource kind: "+string(kind))
	}
	if additional <= 0 {
		additional = 1
	}

	resolved, err := s.resolver.Resolve(ctx, tenantRef)
	if err != nil {
		return LimitDecision{}, err
	}

	limits := identity.FallbackPlanLimits()
	if resolved.HasPlan() {
		limits = resolved.Plan.Limits()
	}
	maxCount := int64(limits.MaxFor(kind))

	current, err := s.counter.Count(ctx, tenantRef, kind.LogicalName())
	if err != nil {
		s.logger.Error("Failed to count tenant resources",
			zap.String("tenant_ref", tenantRef),
			zap.String("resource", kind.LogicalName()),
			zap.Error(err))
		return LimitDecision{}, err
	}

	decision := LimitDecision{
		Allowed:      current+additional <= maxCount,
		Kind:         kind,
		CurrentCount: current,
		MaxCount:     maxCount,
		PlanName:     limits.PlanName,
	}

	if !decision.Allowed {
		s.logger.Info("Resource limit denied",
			zap.String("tenant_ref", tenantRef),
			zap.String("resource", kind.LogicalName()),
			zap.Int64("current", current),
			zap.Int64("additional", additional),
			zap.Int64("max", maxCount),
			zap.String("plan", limits.PlanName))
	}

	return decision, nil
}
