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

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error codes for the engine's error taxonomy.
// Every operation returns either a result or one of these; no untyped
// failure crosses the engine boundary.
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeNotFound             = "NOT_FOUND"
	CodeReferentialIntegrity = "REFERENTIAL_INTEGRITY"
	CodeEntityInUse          = "ENTITY_IN_USE"
	CodeOrderLocked          = "ORDER_LOCKED"
	CodeEmptyOrder           = "EMPTY_ORDER"
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeOverpayment          = "OVERPAYMENT"
	CodeInvalidRange         = "INVALID_RANGE"
)

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput      = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrEntityInUse       = NewDomainError(CodeEntityInUse, "Entity is referenced by other records")
	ErrOrderLocked       = NewDomainError(CodeOrderLocked, "Items can only be modified on a draft order")
	ErrEmptyOrder        = NewDomainError(CodeEmptyOrder, "Order must contain at least one item")
	ErrInvalidTransition = NewDomainError(CodeInvalidTransition, "Status transition not allowed")
	ErrOverpayment       = NewDomainError(CodeOverpayment, "Payment would exceed the document total")
	ErrInvalidRange      = NewDomainError(CodeInvalidRange, "Report date range is invalid")
)

// IsCode reports whether err is a DomainError carrying the given code
func IsCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
