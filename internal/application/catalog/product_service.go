package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/application/entitlement"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/infrastructure/persistence/partition"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRecord is the stored shape of a product document
type ProductRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductStore is the slice of the partition accessor the product
// service needs
type ProductStore interface {
	Insert(ctx context.Context, tenantID, logicalName, id string, doc any) error
	InsertBatch(ctx context.Context, tenantID, logicalName string, docs []partition.Document) error
	List(ctx context.Context, tenantID, logicalName string, limit int) ([]partition.Document, error)
}

// ProductService manages products stored in the per-tenant products
// partition, gated by the plan's product ceiling
type ProductService struct {
	store  ProductStore
	guard  entitlement.LimitGuard
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store ProductStore, guard entitlement.LimitGuard, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{store: store, guard: guard, logger: logger}
}

// CreateProductInput contains input for creating a product
type CreateProductInput struct {
	Name     string
	SKU      string
	Price    decimal.Decimal
	Quantity int
}

func (in CreateProductInput) validate() error {
	if in.Name == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product name is required")
	}
	if in.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRODUCT", "Product price cannot be negative")
	}
	return nil
}

func (in CreateProductInput) toRecord() ProductRecord {
	return ProductRecord{
		ID:        uuid.New().String(),
		Name:      in.Name,
		SKU:       in.SKU,
		Price:     in.Price,
		Quantity:  in.Quantity,
		CreatedAt: time.Now().UTC(),
	}
}

// CreateProduct adds a single product after a product-limit check. A
// denied decision comes back with a nil record and nil error.
func (s *ProductService) CreateProduct(ctx context.Context, tenantRef string, input CreateProductInput) (*ProductRecord, entitlement.LimitDecision, error) {
	if err := input.validate(); err != nil {
		return nil, entitlement.LimitDecision{}, err
	}

	decision, err := s.guard.CheckLimit(ctx, tenantRef, identity.ResourceProducts, 1)
	if err != nil {
		return nil, entitlement.LimitDecision{}, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	record := input.toRecord()
	if err := s.store.Insert(ctx, tenantRef, identity.ResourceProducts.LogicalName(), record.ID, record); err != nil {
		return nil, entitlement.LimitDecision{}, err
	}

	return &record, decision, nil
}

// ImportProducts adds a batch of products. The limit is checked once for
// the whole batch size up front, so a large import cannot slip under the
// ceiling one row at a time. All rows land in one transaction.
func (s *ProductService) ImportProducts(ctx context.Context, tenantRef string, inputs []CreateProductInput) ([]ProductRecord, entitlement.LimitDecision, error) {
	if len(inputs) == 0 {
		return nil, entitlement.LimitDecision{}, shared.NewDomainError("INVALID_IMPORT", "Import contains no products")
	}
	for _, input := range inputs {
		if err := input.validate(); err != nil {
			return nil, entitlement.LimitDecision{}, err
		}
	}

	decision, err := s.guard.CheckLimit(ctx, tenantRef, identity.ResourceProducts, int64(len(inputs)))
	if err != nil {
		return nil, entitlement.LimitDecision{}, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	records := make([]ProductRecord, 0, len(inputs))
	docs := make([]partition.Document, 0, len(inputs))
	for _, input := range inputs {
		record := input.toRecord()
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, entitlement.LimitDecision{}, err
		}
		records = append(records, record)
		docs = append(docs, partition.Document{ID: record.ID, Doc: raw, CreatedAt: record.CreatedAt})
	}

	if err := s.store.InsertBatch(ctx, tenantRef, identity.ResourceProducts.LogicalName(), docs); err != nil {
		return nil, entitlement.LimitDecision{}, err
	}

	s.logger.Info("Products imported",
		zap.String("tenant_ref", tenantRef),
		zap.Int("count", len(records)))

	return records, decision, nil
}

// ListProducts returns the tenant's products, newest first
func (s *ProductService) ListProducts(ctx context.Context, tenantRef string, limit int) ([]ProductRecord, error) {
	docs, err := s.store.List(ctx, tenantRef, identity.ResourceProducts.LogicalName(), limit)
	if err != nil {
		return nil, err
	}

	products := make([]ProductRecord, 0, len(docs))
	for _, doc := range docs {
		var record ProductRecord
		if err := json.Unmarshal(doc.Doc, &record); err != nil {
			s.logger.Warn("Skipping undecodable product document",
				zap.String("tenant_ref", tenantRef),
				zap.String("doc_id", doc.ID))
			continue
		}
		products = append(products, record)
	}
	return products, nil
}
