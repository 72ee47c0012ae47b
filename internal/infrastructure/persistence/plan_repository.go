package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its structured ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Plan, error) {
	return r.findByStoredID(ctx, id.String())
}

// FindByRef finds a plan by an opaque reference, structured form first with
// raw-string fallback. Malformed references yield ErrNotFound, never a
// parse error; PlanResolver turns that miss into the PlanMissing state.
func (r *GormPlanRepository) FindByRef(ctx context.Context, ref string) (*identity.Plan, error) {
	if ref == "" {
		return nil, shared.ErrNotFound
	}

	if id, err := uuid.Parse(ref); err == nil {
		plan, err := r.findByStoredID(ctx, id.String())
		if err == nil {
			return plan, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if id.String() == ref {
			return nil, shared.ErrNotFound
		}
	}

	return r.findByStoredID(ctx, ref)
}

func (r *GormPlanRepository) findByStoredID(ctx context.Context, storedID string) (*identity.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", storedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all plans ordered by creation time
func (r *GormPlanRepository) FindAll(ctx context.Context) ([]identity.Plan, error) {
	var planModels []models.PlanModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&planModels).Error; err != nil {
		return nil, err
	}
	plans := make([]identity.Plan, 0, len(planModels))
	for i := range planModels {
		plans = append(plans, *planModels[i].ToDomain())
	}
	return plans, nil
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *identity.Plan) error {
	var model models.PlanModel
	if err := model.FromDomain(plan); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&model).Error
}
