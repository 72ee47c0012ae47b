package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/retailcore/backend/internal/application/entitlement"
	"github.com/retailcore/backend/internal/domain/identity"
)

// EntitlementHandler exposes the tenant's effective feature set so
// dashboards can render menus without re-deriving plan logic
type EntitlementHandler struct {
	BaseHandler
	features *entitlement.FeatureService
}

// NewEntitlementHandler creates a new entitlement handler
func NewEntitlementHandler(features *entitlement.FeatureService) *EntitlementHandler {
	return &EntitlementHandler{features: features}
}

// FeatureEntry is one entry of the introspection payload
type FeatureEntry struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Allowed  bool   `json:"allowed"`
}

// Get returns every catalog feature with the calling tenant's verdict
func (h *EntitlementHandler) Get(c *gin.Context) {
	allowed, err := h.features.AllowedFeatures(c.Request.Context(), tenantRef(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	catalog := identity.FeatureCatalog()
	entries := make([]FeatureEntry, 0, len(catalog))
	for _, feature := range catalog {
		entries = append(entries, FeatureEntry{
			Key:      string(feature.Key),
			Name:     feature.Name,
			Category: string(feature.Category),
			Allowed:  allowed.Contains(feature.Key),
		})
	}

	h.Success(c, gin.H{"features": entries})
}
