package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailcore/backend/internal/application/entitlement"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
	"github.com/retailcore/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// tenantRef extracts the tenant reference established by the tenant
// middleware
func tenantRef(c *gin.Context) string {
	return middleware.GetTenantID(c)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response, deriving status code from error code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.HTTPStatusForCode(code), dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeInternal, message)
}

// LimitExceeded sends a 403 response carrying the limits payload
func (h *BaseHandler) LimitExceeded(c *gin.Context, decision entitlement.LimitDecision) {
	code := dto.ErrCodeProductLimitExceeded
	message := "Product limit reached for your subscription plan"
	if decision.Kind == identity.ResourceUsers {
		code = dto.ErrCodeUserLimitExceeded
		message = "User limit reached for your subscription plan"
	}
	c.JSON(dto.HTTPStatusForCode(code), dto.NewLimitExceededResponse(code, message, decision))
}

// HandleError maps application errors to the response envelope
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		h.NotFound(c, "Resource not found")
	case errors.Is(err, shared.ErrUnauthorized):
		h.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, shared.ErrAlreadyExists):
		h.Error(c, dto.ErrCodeAlreadyExists, "Resource already exists")
	default:
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			h.Error(c, dto.ErrCodeValidation, domainErr.Message)
			return
		}
		h.InternalError(c, "Internal server error")
	}
}
