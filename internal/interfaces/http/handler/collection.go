package handler

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/retailcore/backend/internal/infrastructure/persistence/partition"
)

// DocumentLister reads documents from a tenant partition
type DocumentLister interface {
	List(ctx context.Context, tenantID, logicalName string, limit int) ([]partition.Document, error)
}

// CollectionHandler is a thin read surface over a single tenant
// partition. The feature-gated collaborator routes (POS, HR, reports)
// use it as their stand-in call site.
type CollectionHandler struct {
	BaseHandler
	store   DocumentLister
	logical string
}

// NewCollectionHandler creates a handler over one logical resource
func NewCollectionHandler(store DocumentLister, logical string) *CollectionHandler {
	return &CollectionHandler{store: store, logical: logical}
}

// List returns the tenant's documents for this logical resource
func (h *CollectionHandler) List(c *gin.Context) {
	docs, err := h.store.List(c.Request.Context(), tenantRef(c), h.logical, 0)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]json.RawMessage, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.Doc)
	}
	h.Success(c, gin.H{"resource": h.logical, "items": items})
}
