package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/retailcore/backend/internal/application/identity"
	"github.com/retailcore/backend/internal/infrastructure/auth"
	"github.com/retailcore/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter(t *testing.T, stack *entitlementStack) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := identityapp.NewUserService(stack.store, stack.limits, nil)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-with-enough-length",
		AccessTokenExpiration: time.Hour,
		Issuer:                "retailcore-test",
	})
	h := NewAuthHandler(users, jwtService)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	return r, jwtService
}

func seedUser(t *testing.T, stack *entitlementStack, tenantID, email, password string) {
	t.Helper()
	users := identityapp.NewUserService(stack.store, stack.limits, nil)
	record, decision, err := users.CreateUser(context.Background(), tenantID, identityapp.CreateUserInput{
		Email:    email,
		Password: password,
		Name:     "Owner",
	})
	require.NoError(t, err)
	require.True(t, decision.Allowed)
	require.NotNil(t, record)
}

func TestAuthHandler_LoginIssuesToken(t *testing.T) {
	stack := newEntitlementStack()
	tenant := stack.addTenant(t, "")
	seedUser(t, stack, tenant.ID.String(), "owner@shop.test", "correct-horse")

	r, jwtService := authTestRouter(t, stack)

	payload := fmt.Sprintf(`{"tenant_id":%q,"email":"owner@shop.test","password":"correct-horse"}`, tenant.ID.String())
	w := postJSON(r, "/auth/login", payload)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Bearer", data["token_type"])

	claims, err := jwtService.ValidateToken(data["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, tenant.ID.String(), claims.TenantID)
}

func TestAuthHandler_WrongPassword(t *testing.T) {
	stack := newEntitlementStack()
	tenant := stack.addTenant(t, "")
	seedUser(t, stack, tenant.ID.String(), "owner@shop.test", "correct-horse")

	r, _ := authTestRouter(t, stack)

	payload := fmt.Sprintf(`{"tenant_id":%q,"email":"owner@shop.test","password":"wrong"}`, tenant.ID.String())
	w := postJSON(r, "/auth/login", payload)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])
}

func TestAuthHandler_UnknownEmailLooksTheSame(t *testing.T) {
	stack := newEntitlementStack()
	tenant := stack.addTenant(t, "")

	r, _ := authTestRouter(t, stack)

	payload := fmt.Sprintf(`{"tenant_id":%q,"email":"nobody@shop.test","password":"anything"}`, tenant.ID.String())
	w := postJSON(r, "/auth/login", payload)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
