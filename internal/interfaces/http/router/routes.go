package router

import (
	"github.com/gin-gonic/gin"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/interfaces/http/handler"
	"github.com/retailcore/backend/internal/interfaces/http/middleware"
)

// SystemRoutes registers liveness endpoints
type SystemRoutes struct {
	Handler *handler.SystemHandler
}

func (r SystemRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", r.Handler.Health)
}

// AuthRoutes registers token issuance endpoints
type AuthRoutes struct {
	Handler *handler.AuthHandler
}

func (r AuthRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", r.Handler.Login)
}

// TenantRoutes registers tenant administration endpoints
type TenantRoutes struct {
	Handler *handler.TenantHandler
}

func (r TenantRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	tenants.POST("", r.Handler.Signup)
	tenants.GET("", r.Handler.List)
	tenants.GET("/:id", r.Handler.Get)
	tenants.PUT("/:id/plan", r.Handler.AssignPlan)
}

// PlanRoutes registers plan administration endpoints
type PlanRoutes struct {
	Handler *handler.PlanHandler
}

func (r PlanRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/plans")
	plans.POST("", r.Handler.Create)
	plans.GET("", r.Handler.List)
	plans.GET("/:id", r.Handler.Get)
}

// EntitlementRoutes registers the feature introspection endpoint
type EntitlementRoutes struct {
	Handler *handler.EntitlementHandler
}

func (r EntitlementRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/entitlements", r.Handler.Get)
}

// ProductRoutes registers product endpoints behind the inventory feature
type ProductRoutes struct {
	Handler   *handler.ProductHandler
	FeatureMW middleware.FeatureMiddlewareConfig
}

func (r ProductRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.Use(middleware.RequireFeature(identity.FeatureInventory, r.FeatureMW))
	products.POST("", r.Handler.Create)
	products.POST("/import", r.Handler.Import)
	products.GET("", r.Handler.List)
}

// UserRoutes registers user endpoints behind the settings feature
type UserRoutes struct {
	Handler   *handler.UserHandler
	FeatureMW middleware.FeatureMiddlewareConfig
}

func (r UserRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.RequireFeature(identity.FeatureSettings, r.FeatureMW))
	users.POST("", r.Handler.Create)
	users.GET("", r.Handler.List)
}

// CollaboratorRoutes registers the feature-gated pass-through routes that
// stand in for the excluded collaborator surfaces (POS, HR, reports)
type CollaboratorRoutes struct {
	Sales     *handler.CollectionHandler
	Employees *handler.CollectionHandler
	Bills     *handler.CollectionHandler
	FeatureMW middleware.FeatureMiddlewareConfig
}

func (r CollaboratorRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pos",
		middleware.RequireFeature(identity.FeaturePOS, r.FeatureMW),
		r.Sales.List)
	rg.GET("/hr/employees",
		middleware.RequireFeature(identity.FeatureHR, r.FeatureMW),
		r.Employees.List)
	rg.GET("/reports",
		middleware.RequireFeature(identity.FeatureReports, r.FeatureMW),
		r.Bills.List)
}
