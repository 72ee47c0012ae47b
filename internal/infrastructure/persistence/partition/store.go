package partition

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// LogicalResources lists the logical resource names every tenant partition
// set is provisioned with at signup. Countable, plan-limited resources
// (products, users) are a subset of these.
var LogicalResources = []string{
	"products",
	"users",
	"customers",
	"sales",
	"purchases",
	"employees",
	"expenses",
	"bills",
}

// Document is a single record in a tenant partition
type Document struct {
	ID        string          `json:"id"`
	Doc       json.RawMessage `json:"doc"`
	CreatedAt time.Time       `json:"created_at"`
}

// row is the storage shape of a Document
type row struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Doc       string    `gorm:"column:doc"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// Store reads and writes tenant-partitioned documents. It holds no state of
// its own beyond the injected database handle and is safe for concurrent
// use across requests.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new partition Store over the given database handle
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ensure creates the partition for (tenantID, logicalName) if it does not
// exist. Partition names are sanitized identifiers, so interpolation is safe.
func (s *Store) Ensure(ctx context.Context, tenantID, logicalName string) error {
	name := For(tenantID, logicalName)
	stmt := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, doc TEXT NOT NULL, created_at TIMESTAMP NOT NULL)`,
		name,
	)
	return s.db.WithContext(ctx).Exec(stmt).Error
}

// EnsureAll provisions the full partition set for a tenant. Called once at
// tenant signup.
func (s *Store) EnsureAll(ctx context.Context, tenantID string) error {
	for _, logical := range LogicalResources {
		if err := s.Ensure(ctx, tenantID, logical); err != nil {
			return fmt.Errorf("provision partition %s: %w", For(tenantID, logical), err)
		}
	}
	return nil
}

// Insert writes one document into the tenant's partition. doc is marshaled
// to JSON.
func (s *Store) Insert(ctx context.Context, tenantID, logicalName, id string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	r := row{ID: id, Doc: string(payload), CreatedAt: time.Now()}
	return s.db.WithContext(ctx).Table(For(tenantID, logicalName)).Create(&r).Error
}

// InsertBatch writes multiple documents into the tenant's partition in a
// single transaction: either the whole batch lands or none of it does.
func (s *Store) InsertBatch(ctx context.Context, tenantID, logicalName string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	name := For(tenantID, logicalName)
	rows := make([]row, 0, len(docs))
	now := time.Now()
	for _, d := range docs {
		createdAt := d.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		rows = append(rows, row{ID: d.ID, Doc: string(d.Doc), CreatedAt: createdAt})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table(name).Create(&rows).Error
	})
}

// Count returns the number of documents in the tenant's partition at call
// time. Implements entitlement.ResourceCounter; results are never cached.
func (s *Store) Count(ctx context.Context, tenantID, logicalName string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Table(For(tenantID, logicalName)).Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

// List returns up to limit documents from the tenant's partition, newest
// first. A non-positive limit defaults to 100.
func (s *Store) List(ctx context.Context, tenantID, logicalName string, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Table(For(tenantID, logicalName)).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, Document{ID: r.ID, Doc: json.RawMessage(r.Doc), CreatedAt: r.CreatedAt})
	}
	return docs, nil
}
