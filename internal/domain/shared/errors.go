package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details []FieldProblem `json:"details,omitempty"`
}

// FieldProblem describes a single invalid field of a ValidationError
type FieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code.
// It lets callers use errors.Is(err, shared.ErrNotFound) against
// errors built with a more specific message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared by every bounded context
const (
	CodeValidation                  = "VALIDATION_ERROR"
	CodeNotFound                    = "NOT_FOUND"
	CodeAlreadyExists               = "ALREADY_EXISTS"
	CodeInvalidState                = "INVALID_STATE"
	CodeMissingAccountConfiguration = "MISSING_ACCOUNT_CONFIGURATION"
	CodeInvalidAccount              = "INVALID_ACCOUNT"
	CodeInvalidAmount               = "INVALID_AMOUNT"
	CodeInsufficientStock           = "INSUFFICIENT_STOCK"
	CodeUnauthorized                = "UNAUTHORIZED"
	CodeForbidden                   = "FORBIDDEN"
	CodeUnavailable                 = "SERVICE_UNAVAILABLE"
)

// Common domain errors
var (
	ErrValidation                  = NewDomainError(CodeValidation, "Validation failed")
	ErrNotFound                    = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists               = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidState                = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrMissingAccountConfiguration = NewDomainError(CodeMissingAccountConfiguration, "Required account is not configured")
	ErrInvalidAccount              = NewDomainError(CodeInvalidAccount, "Account does not exist or is inactive")
	ErrInvalidAmount               = NewDomainError(CodeInvalidAmount, "Amount must be greater than zero")
	ErrInsufficientStock           = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrUnauthorized                = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden                   = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrUnavailable                 = NewDomainError(CodeUnavailable, "Service is temporarily unavailable")
)

// NewNotFoundError builds a NOT_FOUND error naming the missing resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// NewValidationError builds a VALIDATION_ERROR for a single field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Details: []FieldProblem{{Field: field, Message: message}},
	}
}

// ValidationErrors accumulates field problems so a form can report all of
// them at once instead of stopping at the first one.
type ValidationErrors struct {
	problems []FieldProblem
}

// Add records a problem for field
func (v *ValidationErrors) Add(field, message string) {
	v.problems = append(v.problems, FieldProblem{Field: field, Message: message})
}

// Check records message for field when cond is false
func (v *ValidationErrors) Check(cond bool, field, message string) {
	if !cond {
		v.Add(field, message)
	}
}

// HasErrors reports whether any problem was recorded
func (v *ValidationErrors) HasErrors() bool {
	return len(v.problems) > 0
}

// Err returns nil when no problem was recorded, otherwise a VALIDATION_ERROR
// whose message is the first problem
func (v *ValidationErrors) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: v.problems[0].Message,
		Details: append([]FieldProblem(nil), v.problems...),
	}
}
