package shared

import "fmt"

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

// Error codes shared by the storage engine and the facade
const (
	CodeNotFound        = "NOT_FOUND"
	CodeIndexOutOfRange = "INDEX_OUT_OF_RANGE"
	CodeParse           = "PARSE_ERROR"
	CodePersistence     = "PERSISTENCE_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
)

// Common domain errors
var (
	ErrNotFound     = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput = NewDomainError(CodeInvalidInput, "Invalid input provided")
)

// NewNotFoundError creates a NOT_FOUND error for a named resource
func NewNotFoundError(resource, name string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %q not found", resource, name))
}

// NewIndexOutOfRangeError creates an INDEX_OUT_OF_RANGE error for a row index
func NewIndexOutOfRangeError(index, length int) *DomainError {
	return NewDomainError(CodeIndexOutOfRange, fmt.Sprintf("row index %d out of range [0, %d)", index, length))
}

// NewParseError wraps a bulk-import parse failure in a PARSE_ERROR
func NewParseError(message string) *DomainError {
	return NewDomainError(CodeParse, message)
}

// NewPersistenceError wraps a durable load/save failure in a PERSISTENCE_ERROR
func NewPersistenceError(message string) *DomainError {
	return NewDomainError(CodePersistence, message)
}

// NewInvalidInputError creates an INVALID_INPUT error for a rejected field value
func NewInvalidInputError(field, value string) *DomainError {
	return NewDomainError(CodeInvalidInput, fmt.Sprintf("invalid %s: %q", field, value))
}
