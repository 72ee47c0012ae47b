package dto

import "net/http"

// Error code constants used in the error envelope

// Access control error codes
const (
	// ErrCodeUnauthorized is used when no tenant context could be established
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeFeatureNotAllowed is used when the tenant's plan does not include a feature
	ErrCodeFeatureNotAllowed = "FEATURE_NOT_ALLOWED"
	// ErrCodeProductLimitExceeded is used when creating products would exceed the plan ceiling
	ErrCodeProductLimitExceeded = "PRODUCT_LIMIT_EXCEEDED"
	// ErrCodeUserLimitExceeded is used when creating users would exceed the plan ceiling
	ErrCodeUserLimitExceeded = "USER_LIMIT_EXCEEDED"
)

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used for invalid input data
	ErrCodeValidation = "ERR_VALIDATION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnauthorized:         http.StatusUnauthorized,
	ErrCodeFeatureNotAllowed:    http.StatusForbidden,
	ErrCodeProductLimitExceeded: http.StatusForbidden,
	ErrCodeUserLimitExceeded:    http.StatusForbidden,

	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeValidation:    http.StatusBadRequest,
}

// HTTPStatusForCode returns the HTTP status for an error code, defaulting
// to 500 for unknown codes
func HTTPStatusForCode(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
