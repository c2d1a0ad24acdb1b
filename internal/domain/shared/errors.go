package shared

import "strings"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInsufficientStock    = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrUnsupportedOperation = NewDomainError("UNSUPPORTED_OPERATION", "Operation not supported")
	ErrStorageFailure       = NewDomainError("STORAGE_FAILURE", "Storage operation failed")
)

// ValidationError reports the input fields that failed contract checks.
// All applicable checks run before the error is built, so Fields always
// carries the complete set of offending fields.
type ValidationError struct {
	Fields []string `json:"fields"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

// NewValidationError creates a validation error for the given fields
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
