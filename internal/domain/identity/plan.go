package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
)

// PlanStatus represents the status of a subscription plan
type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

// Plan represents a subscription plan defining feature entitlements and
// resource ceilings. Plans are created and edited by administrative
// operations; the entitlement core only reads them.
type Plan struct {
	shared.BaseEntity
	Name            string        `gorm:"type:varchar(200);not null"`
	AllowedFeatures FeatureKeySet `gorm:"-"`
	MaxProducts     int           `gorm:"not null;default:0"`
	MaxUsers        int           `gorm:"not null;default:0"`
	Status          PlanStatus    `gorm:"type:varchar(20);not null;default:'active'"`

	// StoredRef is the exact persistence key the plan was loaded under.
	// Legacy rows carry raw non-UUID ids; saving must address the row by
	// this key, not the structured ID. Empty for unpersisted plans.
	StoredRef string `gorm:"-"`
}

// Ref returns the plan's canonical persistence reference: the stored key
// it was loaded under, or the structured ID for new plans.
func (p *Plan) Ref() string {
	if p.StoredRef != "" {
		return p.StoredRef
	}
	return p.ID.String()
}

// NewPlan creates a new plan with the given name and resource ceilings
func NewPlan(name string, maxProducts, maxUsers int) (*Plan, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Plan name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Plan name cannot exceed 200 characters")
	}
	if maxProducts < 0 {
		return nil, shared.NewDomainError("INVALID_MAX_PRODUCTS", "Max products cannot be negative")
	}
	if maxUsers < 0 {
		return nil, shared.NewDomainError("INVALID_MAX_USERS", "Max users cannot be negative")
	}

	return &Plan{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		AllowedFeatures: NewFeatureKeySet(),
		MaxProducts:     maxProducts,
		MaxUsers:        maxUsers,
		Status:          PlanStatusActive,
	}, nil
}

// SetAllowedFeatures replaces the plan's explicit feature allow-list.
// Keys outside the catalog are rejected.
func (p *Plan) SetAllowedFeatures(keys []FeatureKey) error {
	set := NewFeatureKeySet()
	for _, k := range keys {
		if !IsValidFeatureKey(k) {
			return shared.NewDomainError("INVALID_FEATURE_KEY", "Unknown feature key: "+string(k))
		}
		set.Add(k)
	}
	p.AllowedFeatures = set
	p.Touch()
	return nil
}

// HasExplicitFeatures reports whether the plan carries a non-empty allow-list
func (p *Plan) HasExplicitFeatures() bool {
	return p.AllowedFeatures.Len() > 0
}

// IsActive returns true if the plan is active
func (p *Plan) IsActive() bool {
	return p.Status == PlanStatusActive
}

// PlanLimits carries the resource ceilings of a plan alongside its name,
// so limit denials can render an actionable message.
type PlanLimits struct {
	PlanName    string
	MaxProducts int
	MaxUsers    int
}

// Fallback ceilings applied when a tenant has no resolvable plan. These are
// deliberately conservative, unlike the fully permissive feature fallback.
const (
	FallbackPlanName    = "Basic Plan"
	FallbackMaxProducts = 10
	FallbackMaxUsers    = 5
)

// FallbackPlanLimits returns the ceilings used when no plan resolves
func FallbackPlanLimits() PlanLimits {
	return PlanLimits{
		PlanName:    FallbackPlanName,
		MaxProducts: FallbackMaxProducts,
		MaxUsers:    FallbackMaxUsers,
	}
}

// Limits returns the plan's resource ceilings
func (p *Plan) Limits() PlanLimits {
	return PlanLimits{
		PlanName:    p.Name,
		MaxProducts: p.MaxProducts,
		MaxUsers:    p.MaxUsers,
	}
}

// MaxFor returns the ceiling for a resource kind, or -1 for unknown kinds
func (l PlanLimits) MaxFor(kind ResourceKind) int {
	switch kind {
	case ResourceProducts:
		return l.MaxProducts
	case ResourceUsers:
		return l.MaxUsers
	default:
		return -1
	}
}

// PlanRepository defines the interface for plan persistence
type PlanRepository interface {
	// FindByID finds a plan by its structured ID
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)

	// FindByRef finds a plan by an opaque reference string. Implementations
	// must attempt the structured ID form first and fall back to raw-string
	// equality, never erroring on malformed input.
	FindByRef(ctx context.Context, ref string) (*Plan, error)

	// FindAll returns all plans
	FindAll(ctx context.Context) ([]Plan, error)

	// Save creates or updates a plan
	Save(ctx context.Context, plan *Plan) error
}
