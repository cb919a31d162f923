package dto

import "fmt"

// ValidationError carries the field that failed request validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NotFoundError signals a missing resource; mapped to 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// StateViolationError signals an operation not valid in the conversation's
// current gate state; mapped to 409.
type StateViolationError struct {
	Message string
}

func (e *StateViolationError) Error() string {
	return e.Message
}
