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

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its structured ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	return r.findByStoredID(ctx, id.String())
}

// FindByRef finds a tenant by an opaque reference. The structured form is
// attempted first; anything that does not parse (or does not match in its
// normalized form) falls back to raw-string equality. Malformed input is
// never an error, only a miss.
func (r *GormTenantRepository) FindByRef(ctx context.Context, ref string) (*identity.Tenant, error) {
	if ref == "" {
		return nil, shared.ErrNotFound
	}

	if id, err := uuid.Parse(ref); err == nil {
		tenant, err := r.findByStoredID(ctx, id.String())
		if err == nil {
			return tenant, nil
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

func (r *GormTenantRepository) findByStoredID(ctx context.Context, storedID string) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", storedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all tenants ordered by creation time
func (r *GormTenantRepository) FindAll(ctx context.Context) ([]identity.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	tenants := make([]identity.Tenant, 0, len(tenantModels))
	for i := range tenantModels {
		tenants = append(tenants, *tenantModels[i].ToDomain())
	}
	return tenants, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	var model models.TenantModel
	model.FromDomain(tenant)
	return r.db.WithContext(ctx).Save(&model).Error
}
