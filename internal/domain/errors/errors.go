package errors

import (
	"fmt"
	"net/http"
)

// AppError is a custom error type for application errors
type AppError struct {
	Code       string
	Message    string
	StatusCode int // Same rule as HTTP status codes
	Err        error
	Details    map[string]interface{}
}

// Error codes shared by the store, the role gate and the draft bridge
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeRegistryMismatch = "REGISTRY_MISMATCH"
	CodeNotFound         = "NOT_FOUND"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeAuthentication   = "AUTHENTICATION_ERROR"
	CodeConflict         = "CONFLICT"
	CodeExternalService  = "EXTERNAL_SERVICE_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
)

// Sentinels for errors.Is comparisons. Only Code is compared.
var (
	ErrValidation       = AppError{Code: CodeValidation}
	ErrRegistryMismatch = AppError{Code: CodeRegistryMismatch}
	ErrNotFound         = AppError{Code: CodeNotFound}
	ErrPermissionDenied = AppError{Code: CodePermissionDenied}
	ErrAuthentication   = AppError{Code: CodeAuthentication}
	ErrExternalService  = AppError{Code: CodeExternalService}
)

// Error returns a string representation of the error
func (e AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is implements the errors.Is interface
func (e AppError) Is(target error) bool {
	if target, ok := target.(AppError); ok {
		return target.Code == e.Code
	}
	return false
}

// Unwrap returns the underlying error
func (e AppError) Unwrap() error {
	return e.Err
}

// WithDetails adds details to the error
func (e AppError) WithDetails(details map[string]interface{}) AppError {
	e.Details = details
	return e
}

// WithDetail adds a single detail to the error
func (e AppError) WithDetail(key string, value interface{}) AppError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// NewValidationError creates a new validation error
func NewValidationError(message string) AppError {
	return AppError{
		Code:       CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(message string, err error) AppError {
	return AppError{
		Code:       CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

// NewRegistryMismatchError is returned when a free-text name does not belong to any resident
func NewRegistryMismatchError(message string) AppError {
	return AppError{
		Code:       CodeRegistryMismatch,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) AppError {
	return AppError{
		Code:       CodeAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewPermissionDeniedError creates a new permission error for role-gated operations
func NewPermissionDeniedError(message string) AppError {
	return AppError{
		Code:       CodePermissionDenied,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) AppError {
	return AppError{
		Code:       CodeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) AppError {
	return AppError{
		Code:       CodeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewExternalServiceError wraps a failure of an upstream service
func NewExternalServiceError(message string, err error) AppError {
	return AppError{
		Code:       CodeExternalService,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Err:        err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) AppError {
	return AppError{
		Code:       CodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}
