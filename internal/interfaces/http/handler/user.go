package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/retailcore/backend/internal/application/identity"
)

// UserHandler serves tenant user endpoints
type UserHandler struct {
	BaseHandler
	users *identityapp.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *identityapp.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CreateUserRequest is the user creation payload
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse is the wire shape of a user; the password hash never leaves
// the store layer
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(record *identityapp.UserRecord) UserResponse {
	return UserResponse{
		ID:        record.ID,
		Email:     record.Email,
		Name:      record.Name,
		CreatedAt: record.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create adds a user, subject to the plan's user ceiling
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid user payload")
		return
	}

	record, decision, err := h.users.CreateUser(c.Request.Context(), tenantRef(c), identityapp.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !decision.Allowed {
		h.LimitExceeded(c, decision)
		return
	}

	h.Created(c, toUserResponse(record))
}

// List returns the tenant's users
func (h *UserHandler) List(c *gin.Context) {
	records, err := h.users.ListUsers(c.Request.Context(), tenantRef(c), 0)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(records))
	for i := range records {
		out = append(out, toUserResponse(&records[i]))
	}
	h.Success(c, out)
}
