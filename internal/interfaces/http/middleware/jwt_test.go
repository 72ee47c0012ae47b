package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailcore/backend/internal/infrastructure/auth"
	"github.com/retailcore/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiddlewareJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration: time.Hour,
		Issuer:                "retailcore-backend",
	})
}

func jwtTestRouter(svc *auth.JWTService) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var captured string
	r := gin.New()
	r.Use(JWTAuthMiddleware(svc))
	r.GET("/resource", func(c *gin.Context) {
		captured = GetJWTTenantID(c)
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newMiddlewareJWTService()
	token, err := svc.GenerateToken(auth.GenerateTokenInput{TenantID: "tenant-1", UserID: "u1"})
	require.NoError(t, err)

	r, captured := jwtTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tenant-1", *captured)
}

func TestJWTAuthMiddleware_InvalidTokenIs401(t *testing.T) {
	r, _ := jwtTestRouter(newMiddlewareJWTService())

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_MalformedHeaderIs401(t *testing.T) {
	r, _ := jwtTestRouter(newMiddlewareJWTService())

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set(AuthHeaderKey, "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_SkipPathCoversNestedRoutes(t *testing.T) {
	// A skip entry covers everything nested under it, so a stale token on
	// an admin route must not be rejected by the auth layer
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(newMiddlewareJWTService()))
	r.GET("/api/v1/tenants/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants/tenant-legacy", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"stale-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_SkipPathIsNotBarePrefix(t *testing.T) {
	// "/api/v1/tenants" must not skip sibling routes that merely share the
	// string prefix
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(newMiddlewareJWTService()))
	r.GET("/api/v1/tenantsummary", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenantsummary", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"stale-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_NoTokenPassesThrough(t *testing.T) {
	// The tenant middleware downstream decides whether a header can
	// stand in for a token
	r, captured := jwtTestRouter(newMiddlewareJWTService())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", *captured)
}
