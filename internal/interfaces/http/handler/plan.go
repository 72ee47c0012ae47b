package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/retailcore/backend/internal/application/identity"
	"github.com/retailcore/backend/internal/domain/identity"
)

// PlanHandler serves plan administration endpoints
type PlanHandler struct {
	BaseHandler
	plans *identityapp.PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(plans *identityapp.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// CreatePlanRequest is the plan creation payload. An empty allowed_features
// list is valid and triggers the name-based tier heuristic at evaluation.
type CreatePlanRequest struct {
	Name            string   `json:"name" binding:"required"`
	AllowedFeatures []string `json:"allowed_features"`
	MaxProducts     int      `json:"max_products" binding:"min=0"`
	MaxUsers        int      `json:"max_users" binding:"min=0"`
}

// PlanResponse is the wire shape of a plan
type PlanResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	AllowedFeatures []string  `json:"allowed_features"`
	MaxProducts     int       `json:"max_products"`
	MaxUsers        int       `json:"max_users"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func toPlanResponse(plan *identity.Plan) PlanResponse {
	keys := plan.AllowedFeatures.Keys()
	features := make([]string, 0, len(keys))
	for _, key := range keys {
		features = append(features, string(key))
	}
	return PlanResponse{
		ID:              plan.Ref(),
		Name:            plan.Name,
		AllowedFeatures: features,
		MaxProducts:     plan.MaxProducts,
		MaxUsers:        plan.MaxUsers,
		Status:          string(plan.Status),
		CreatedAt:       plan.CreatedAt,
	}
}

// Create creates a plan
func (h *PlanHandler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid plan payload")
		return
	}

	features := make([]identity.FeatureKey, 0, len(req.AllowedFeatures))
	for _, key := range req.AllowedFeatures {
		features = append(features, identity.FeatureKey(key))
	}

	plan, err := h.plans.CreatePlan(c.Request.Context(), identityapp.CreatePlanInput{
		Name:            req.Name,
		AllowedFeatures: features,
		MaxProducts:     req.MaxProducts,
		MaxUsers:        req.MaxUsers,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPlanResponse(plan))
}

// Get returns a plan by reference
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPlanResponse(plan))
}

// List returns all plans
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, toPlanResponse(&plans[i]))
	}
	h.Success(c, out)
}
