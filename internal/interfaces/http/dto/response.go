package dto

import (
	"time"

	"github.com/retailcore/backend/internal/application/entitlement"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details. Limits is populated only on
// resource-limit denials.
type ErrorInfo struct {
	Code    string     `json:"code"`
	Message string     `json:"message"`
	Limits  *LimitInfo `json:"limits,omitempty"`
}

// LimitInfo describes the ceiling that caused a limit denial
type LimitInfo struct {
	PlanName        string `json:"plan_name"`
	MaxProducts     *int64 `json:"max_products,omitempty"`
	CurrentProducts *int64 `json:"current_products,omitempty"`
	MaxUsers        *int64 `json:"max_users,omitempty"`
	CurrentUsers    *int64 `json:"current_users,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewLimitExceededResponse creates an error response carrying the limits
// payload from a denied limit decision
func NewLimitExceededResponse(code, message string, decision entitlement.LimitDecision) Response {
	limits := &LimitInfo{PlanName: decision.PlanName}
	current := decision.CurrentCount
	ceiling := decision.MaxCount
	switch decision.Kind {
	case "users":
		limits.MaxUsers = &ceiling
		limits.CurrentUsers = &current
	default:
		limits.MaxProducts = &ceiling
		limits.CurrentProducts = &current
	}
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Limits:  limits,
		},
	}
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required"`
}

// TimestampResponse represents timestamps in response
type TimestampResponse struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
