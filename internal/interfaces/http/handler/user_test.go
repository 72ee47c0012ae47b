package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	identityapp "github.com/retailcore/backend/internal/application/identity"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
)

func userTestRouter(stack *entitlementStack, tenantID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := identityapp.NewUserService(stack.store, stack.limits, nil)
	h := NewUserHandler(svc)

	r := gin.New()
	users := r.Group("/users")
	users.Use(setTenant(tenantID))
	users.Use(middleware.RequireFeature(identity.FeatureSettings, stack.featureMW()))
	users.POST("", h.Create)
	users.GET("", h.List)
	return r
}

func TestUserHandler_CreateWithinLimit(t *testing.T) {
	stack := newEntitlementStack()
	tenant := stack.addTenant(t, "")
	r := userTestRouter(stack, tenant.ID.String())

	w := postJSON(r, "/users", `{"email":"owner@shop.test","name":"Owner","password":"s3cret-pass"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "owner@shop.test", data["email"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUserHandler_SixthUserDenied(t *testing.T) {
	// Fallback user ceiling is 5; five existing users block the sixth
	stack := newEntitlementStack()
	tenant := stack.addTenant(t, "")
	stack.store.seed(t, tenant.ID.String(), "users", 5)
	r := userTestRouter(stack, tenant.ID.String())

	w := postJSON(r, "/users", `{"email":"sixth@shop.test","password":"s3cret-pass"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "USER_LIMIT_EXCEEDED", errObj["code"])

	limits := errObj["limits"].(map[string]interface{})
	assert.Equal(t, "Basic Plan", limits["plan_name"])
	assert.Equal(t, float64(5), limits["max_users"])
	assert.Equal(t, float64(5), limits["current_users"])
	assert.NotContains(t, limits, "max_products")
}

func TestUserHandler_PlanCeilingApplies(t *testing.T) {
	stack := newEntitlementStack()
	plan := stack.addPlan(t, "Team Plan", 100, 2)
	tenant := stack.addTenant(t, plan.ID.String())
	stack.store.seed(t, tenant.ID.String(), "users", 2)
	r := userTestRouter(stack, tenant.ID.String())

	w := postJSON(r, "/users", `{"email":"third@shop.test","password":"s3cret-pass"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	limits := body["error"].(map[string]interface{})["limits"].(map[string]interface{})
	assert.Equal(t, "Team Plan", limits["plan_name"])
	assert.Equal(t, float64(2), limits["max_users"])
}

func TestUserHandler_InvalidPayload(t *testing.T) {
	stack := newEntitlementStack()
	tenant := stack.addTenant(t, "")
	r := userTestRouter(stack, tenant.ID.String())

	w := postJSON(r, "/users", `{"email":"not-an-email","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
