package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a record is absent or owned by someone else.
	// The two cases are never distinguished.
	ErrNotFound = errors.New("not found")

	// ErrPreconditionFailed is returned when a transaction is created before
	// the owner has any category.
	ErrPreconditionFailed = errors.New("precondition failed: create a category before adding transactions")

	// ErrBadRequest is returned for requests that are inconsistent with themselves,
	// such as a payload id that differs from the path id.
	ErrBadRequest = errors.New("bad request")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) Error() string {
	return f.Field + ": " + f.Message
}

// ValidationError collects every invalid field of one input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field error was collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ConflictError reports a uniqueness violation or a delete blocked by
// referencing records.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflictError(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

func IsConflictError(err error) bool {
	var conflictError *ConflictError
	return errors.As(err, &conflictError)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
