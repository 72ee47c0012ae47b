package identity

import (
	"context"

	"github.com/retailcore/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// PlanService handles plan administration. Plans are edited here (or
// directly in the store by operators); the entitlement core only reads
// them.
type PlanService struct {
	planRepo identity.PlanRepository
	logger   *zap.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(planRepo identity.PlanRepository, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{planRepo: planRepo, logger: logger}
}

// CreatePlanInput contains input for creating a plan
type CreatePlanInput struct {
	Name            string
	AllowedFeatures []identity.FeatureKey
	MaxProducts     int
	MaxUsers        int
}

// CreatePlan creates a plan. An empty allow-list is valid: such plans
// fall back to the name-based tier heuristic at evaluation time.
func (s *PlanService) CreatePlan(ctx context.Context, input CreatePlanInput) (*identity.Plan, error) {
	plan, err := identity.NewPlan(input.Name, input.MaxProducts, input.MaxUsers)
	if err != nil {
		return nil, err
	}
	if len(input.AllowedFeatures) > 0 {
		if err := plan.SetAllowedFeatures(input.AllowedFeatures); err != nil {
			return nil, err
		}
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("Plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("name", plan.Name))

	return plan, nil
}

// Get returns a plan by an opaque reference
func (s *PlanService) Get(ctx context.Context, ref string) (*identity.Plan, error) {
	return s.planRepo.FindByRef(ctx, ref)
}

// List returns all plans
func (s *PlanService) List(ctx context.Context) ([]identity.Plan, error) {
	return s.planRepo.FindAll(ctx)
}
