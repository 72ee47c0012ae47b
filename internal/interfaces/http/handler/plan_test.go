package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	identityapp "github.com/retailcore/backend/internal/application/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planTestRouter(stack *entitlementStack) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPlanHandler(identityapp.NewPlanService(stack.planRepo, nil))

	r := gin.New()
	plans := r.Group("/plans")
	plans.POST("", h.Create)
	plans.GET("", h.List)
	plans.GET("/:id", h.Get)
	return r
}

func TestPlanHandler_CreateWithExplicitFeatures(t *testing.T) {
	stack := newEntitlementStack()
	r := planTestRouter(stack)

	w := postJSON(r, "/plans", `{"name":"POS Bundle","allowed_features":["pos","bills"],"max_products":50,"max_users":3}`)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "POS Bundle", data["name"])
	assert.ElementsMatch(t, []interface{}{"bills", "pos"}, data["allowed_features"])
	assert.Equal(t, float64(50), data["max_products"])
}

func TestPlanHandler_CreateWithEmptyAllowListIsValid(t *testing.T) {
	stack := newEntitlementStack()
	r := planTestRouter(stack)

	w := postJSON(r, "/plans", `{"name":"Standard","max_products":100,"max_users":10}`)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	data := body["data"].(map[string]interface{})
	assert.Empty(t, data["allowed_features"])
}

func TestPlanHandler_CreateRejectsUnknownFeatureKey(t *testing.T) {
	stack := newEntitlementStack()
	r := planTestRouter(stack)

	w := postJSON(r, "/plans", `{"name":"Odd","allowed_features":["timeTravel"]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "ERR_VALIDATION", errObj["code"])
}

func TestPlanHandler_GetUnknownPlan(t *testing.T) {
	stack := newEntitlementStack()
	r := planTestRouter(stack)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plans/no-such-plan", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
