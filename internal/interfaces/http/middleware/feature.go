package middleware

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// AllowedFeaturesKey is the gin context key for the tenant's computed
// feature set, stored for downstream handlers.
const AllowedFeaturesKey = "allowed_features"

// FeatureAccessor computes the effective feature set for a tenant
type FeatureAccessor interface {
	AllowedFeatures(ctx context.Context, tenantRef string) (identity.FeatureKeySet, error)
}

// EntitlementCache caches computed feature sets. A miss means the
// accessor recomputes; faults degrade to recomputation.
type EntitlementCache interface {
	Get(ctx context.Context, tenantRef string) (identity.FeatureKeySet, bool)
	Set(ctx context.Context, tenantRef string, features identity.FeatureKeySet)
}

// FeatureMiddlewareConfig holds configuration for the feature gate
type FeatureMiddlewareConfig struct {
	// Accessor is required for computing tenant feature sets
	Accessor FeatureAccessor
	// Cache is optional for caching computed feature sets
	Cache EntitlementCache
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireFeature creates middleware that admits a request only when the
// tenant's effective feature set includes the given key.
// Panics if featureKey is not a valid feature key (fail fast at startup).
func RequireFeature(featureKey identity.FeatureKey, cfg FeatureMiddlewareConfig) gin.HandlerFunc {
	if !identity.IsValidFeatureKey(featureKey) {
		panic(fmt.Sprintf("invalid feature key: %s", featureKey))
	}

	return func(c *gin.Context) {
		tenantRef := GetTenantID(c)
		if tenantRef == "" {
			respondUnauthorized(c, "No tenant context found")
			return
		}

		ctx := c.Request.Context()

		features, cached := identity.FeatureKeySet(nil), false
		if cfg.Cache != nil {
			features, cached = cfg.Cache.Get(ctx, tenantRef)
		}
		if !cached {
			var err error
			features, err = cfg.Accessor.AllowedFeatures(ctx, tenantRef)
			if err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to compute feature set",
						zap.String("tenant_id", tenantRef),
						zap.String("feature", string(featureKey)),
						zap.Error(err))
				}
				c.AbortWithStatusJSON(
					dto.HTTPStatusForCode(dto.ErrCodeInternal),
					dto.NewErrorResponse(dto.ErrCodeInternal, "Failed to determine feature access"),
				)
				return
			}
			if cfg.Cache != nil {
				cfg.Cache.Set(ctx, tenantRef, features)
			}
		}

		c.Set(AllowedFeaturesKey, features)

		if !features.Contains(featureKey) {
			if cfg.Logger != nil {
				cfg.Logger.Info("Feature access denied",
					zap.String("tenant_id", tenantRef),
					zap.String("feature", string(featureKey)))
			}
			c.AbortWithStatusJSON(
				dto.HTTPStatusForCode(dto.ErrCodeFeatureNotAllowed),
				dto.NewErrorResponse(dto.ErrCodeFeatureNotAllowed, deniedMessage(featureKey)),
			)
			return
		}

		c.Next()
	}
}

func deniedMessage(featureKey identity.FeatureKey) string {
	if feature, ok := identity.FeatureByKey(featureKey); ok {
		return fmt.Sprintf("Your subscription plan does not include %s", feature.Name)
	}
	return fmt.Sprintf("Your subscription plan does not include feature %q", featureKey)
}

// GetAllowedFeatures retrieves the tenant's computed feature set from
// gin.Context, if a feature gate has run on this request
func GetAllowedFeatures(c *gin.Context) (identity.FeatureKeySet, bool) {
	if v, exists := c.Get(AllowedFeaturesKey); exists {
		if features, ok := v.(identity.FeatureKeySet); ok {
			return features, true
		}
	}
	return nil, false
}
