package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/retailcore/backend/internal/application/identity"
	"github.com/retailcore/backend/internal/domain/identity"
)

// TenantHandler serves tenant administration endpoints
type TenantHandler struct {
	BaseHandler
	tenants *identityapp.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenants *identityapp.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// SignupRequest is the tenant signup payload
type SignupRequest struct {
	Name         string `json:"name" binding:"required"`
	BusinessType string `json:"business_type"`
	PlanRef      string `json:"plan_ref"`
}

// AssignPlanRequest sets a tenant's plan reference
type AssignPlanRequest struct {
	PlanRef string `json:"plan_ref" binding:"required"`
}

// TenantResponse is the wire shape of a tenant
type TenantResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	PlanRef      *string   `json:"plan_ref,omitempty"`
	BusinessType *string   `json:"business_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toTenantResponse(tenant *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:           tenant.Ref(),
		Name:         tenant.Name,
		Status:       string(tenant.Status),
		PlanRef:      tenant.PlanRef,
		BusinessType: tenant.BusinessType,
		CreatedAt:    tenant.CreatedAt,
	}
}

// Signup creates a tenant and provisions its partitions
func (h *TenantHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid signup payload")
		return
	}

	tenant, err := h.tenants.Signup(c.Request.Context(), identityapp.SignupInput{
		Name:         req.Name,
		BusinessType: req.BusinessType,
		PlanRef:      req.PlanRef,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTenantResponse(tenant))
}

// Get returns a tenant by reference
func (h *TenantHandler) Get(c *gin.Context) {
	tenant, err := h.tenants.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTenantResponse(tenant))
}

// List returns all tenants
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.tenants.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		out = append(out, toTenantResponse(&tenants[i]))
	}
	h.Success(c, out)
}

// AssignPlan sets the tenant's plan reference
func (h *TenantHandler) AssignPlan(c *gin.Context) {
	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid plan assignment payload")
		return
	}

	tenant, err := h.tenants.AssignPlan(c.Request.Context(), c.Param("id"), req.PlanRef)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTenantResponse(tenant))
}
