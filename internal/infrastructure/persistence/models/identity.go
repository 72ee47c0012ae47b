package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/domain/shared"
)

// TenantModel is the persistence model for the Tenant domain entity.
// IDs are stored as text so lookups can fall back to raw-string equality
// when a reference does not parse as a structured id.
type TenantModel struct {
	ID           string    `gorm:"type:varchar(100);primaryKey"`
	Name         string    `gorm:"type:varchar(200);not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'"`
	PlanRef      *string   `gorm:"type:varchar(100)"`
	BusinessType *string   `gorm:"type:varchar(100)"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseEntity: shared.BaseEntity{
			ID:        parseStoredID(m.ID),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:         m.Name,
		Status:       identity.TenantStatus(m.Status),
		PlanRef:      m.PlanRef,
		BusinessType: m.BusinessType,
		StoredRef:    m.ID,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
// The row is keyed by the reference the entity was loaded under, so
// mutations to legacy raw-id rows land on the original row instead of
// minting a phantom one.
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.ID = t.Ref()
	m.Name = t.Name
	m.Status = string(t.Status)
	m.PlanRef = t.PlanRef
	m.BusinessType = t.BusinessType
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// PlanModel is the persistence model for the Plan domain entity.
// The feature allow-list is serialized as a JSON array of feature keys.
type PlanModel struct {
	ID              string    `gorm:"type:varchar(100);primaryKey"`
	Name            string    `gorm:"type:varchar(200);not null"`
	AllowedFeatures string    `gorm:"type:text;not null;default:'[]'"`
	MaxProducts     int       `gorm:"not null;default:0"`
	MaxUsers        int       `gorm:"not null;default:0"`
	Status          string    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}

// ToDomain converts the persistence model to a domain Plan entity.
// A malformed or empty allow-list column decodes to an empty set rather
// than failing the read: the evaluator's default tier covers that case.
func (m *PlanModel) ToDomain() *identity.Plan {
	var keys []identity.FeatureKey
	if m.AllowedFeatures != "" {
		if err := json.Unmarshal([]byte(m.AllowedFeatures), &keys); err != nil {
			keys = nil
		}
	}

	return &identity.Plan{
		BaseEntity: shared.BaseEntity{
			ID:        parseStoredID(m.ID),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:            m.Name,
		AllowedFeatures: identity.NewFeatureKeySet(keys...),
		MaxProducts:     m.MaxProducts,
		MaxUsers:        m.MaxUsers,
		Status:          identity.PlanStatus(m.Status),
		StoredRef:       m.ID,
	}
}

// FromDomain populates the persistence model from a domain Plan entity
func (m *PlanModel) FromDomain(p *identity.Plan) error {
	payload, err := json.Marshal(p.AllowedFeatures.Keys())
	if err != nil {
		return err
	}
	m.ID = p.Ref()
	m.Name = p.Name
	m.AllowedFeatures = string(payload)
	m.MaxProducts = p.MaxProducts
	m.MaxUsers = p.MaxUsers
	m.Status = string(p.Status)
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
	return nil
}

// parseStoredID parses a stored identifier into its structured form.
// Legacy rows may carry non-UUID ids; those map to the zero UUID instead
// of failing the read, since callers address such rows by raw reference.
func parseStoredID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
