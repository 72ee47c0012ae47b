package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/retailcore/backend/internal/application/identity"
	"github.com/retailcore/backend/internal/infrastructure/auth"
)

// AuthHandler issues access tokens
type AuthHandler struct {
	BaseHandler
	users *identityapp.UserService
	jwt   *auth.JWTService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *identityapp.UserService, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

// LoginRequest is the login payload. The tenant is named explicitly:
// login happens before any tenant context exists.
type LoginRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}

// Login verifies credentials against the tenant's users partition and
// issues a JWT carrying the tenant_id claim
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid login payload")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.TenantID, req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	token, err := h.jwt.GenerateToken(auth.GenerateTokenInput{
		TenantID: req.TenantID,
		UserID:   user.ID,
		Username: user.Name,
	})
	if err != nil {
		h.InternalError(c, "Failed to issue token")
		return
	}

	h.Success(c, LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}
