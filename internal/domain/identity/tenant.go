package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

// Tenant represents an isolated customer account owning its own data
// partitions. PlanRef is an opaque reference to a Plan: it may be absent,
// and when present it may reference a plan that no longer exists. The
// entitlement core must stay deterministic in both cases.
type Tenant struct {
	shared.BaseEntity
	Name         string       `gorm:"type:varchar(200);not null"`
	Status       TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
	PlanRef      *string      `gorm:"type:varchar(100)"`
	BusinessType *string      `gorm:"type:varchar(100)"`

	// StoredRef is the exact persistence key the tenant was loaded under.
	// Legacy rows carry raw non-UUID ids that do not survive a round trip
	// through the structured ID field; saving must address the row by this
	// key. Empty for entities that have not been persisted yet.
	StoredRef string `gorm:"-"`
}

// Ref returns the tenant's canonical persistence reference: the stored key
// it was loaded under, or the structured ID for new entities.
func (t *Tenant) Ref() string {
	if t.StoredRef != "" {
		return t.StoredRef
	}
	return t.ID.String()
}

// NewTenant creates a new tenant with required fields
func NewTenant(name string) (*Tenant, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot exceed 200 characters")
	}

	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Status:     TenantStatusActive,
	}, nil
}

// AssignPlan sets the tenant's plan reference. The reference is stored as
// given; resolution happens at read time.
func (t *Tenant) AssignPlan(ref string) error {
	if ref == "" {
		return shared.NewDomainError("INVALID_PLAN_REF", "Plan reference cannot be empty")
	}
	t.PlanRef = &ref
	t.Touch()
	return nil
}

// ClearPlan removes the tenant's plan reference
func (t *Tenant) ClearPlan() {
	t.PlanRef = nil
	t.Touch()
}

// HasPlanRef reports whether the tenant carries a plan reference
func (t *Tenant) HasPlanRef() bool {
	return t.PlanRef != nil && *t.PlanRef != ""
}

// SetBusinessType sets the tenant's business classification
func (t *Tenant) SetBusinessType(businessType string) {
	if businessType == "" {
		t.BusinessType = nil
	} else {
		t.BusinessType = &businessType
	}
	t.Touch()
}

// Activate activates the tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}
	t.Status = TenantStatusActive
	t.Touch()
	return nil
}

// Deactivate deactivates the tenant
func (t *Tenant) Deactivate() error {
	if t.Status == TenantStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Tenant is already inactive")
	}
	t.Status = TenantStatusInactive
	t.Touch()
	return nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its structured ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByRef finds a tenant by an opaque reference string, tolerating
	// both the structured ID form and raw-string equality. Malformed input
	// yields shared.ErrNotFound, never a parse error.
	FindByRef(ctx context.Context, ref string) (*Tenant, error)

	// FindAll returns all tenants
	FindAll(ctx context.Context) ([]Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error
}
