/*
Package shared - domain layer building blocks shared across subdomains.

Error design principles:
1. Sentinel errors support type-safe errors.Is() checks
2. DomainError captures the stack at creation time, formats lazily
3. Domain errors carry no transport concepts (no HTTP status codes)
4. Only the standard library errors package is used here
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel Errors
// Used with errors.Is() to classify failures without carrying detail
// ============================================================================

var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput input validation failed before any pipeline ran
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict resource conflict (concurrent modification, unique keys)
	ErrConflict = errors.New("conflict")
)

// ============================================================================
// DomainError
// Structured error carrying business context and the creation-point stack
// ============================================================================

// DomainError is a structured domain error supporting errors.Is/errors.As.
type DomainError struct {
	// Err is the underlying sentinel, checked via errors.Is()
	Err error

	// Entity names the entity involved (e.g. "order", "member")
	Entity string

	// Message is the human-readable description
	Message string

	// Field optionally names the field for validation errors
	Field string

	// stack holds raw frames captured at creation, formatted on demand
	stack []uintptr
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel for errors.Is() and errors.As().
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames. Called only when logging.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// ============================================================================
// Stack capture helpers
// ============================================================================

// CaptureStack captures the current call stack.
// skip is the number of frames to drop (typically 3: Callers, CaptureStack,
// the NewXxxError constructor).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders raw frames as strings, filtering runtime internals.
// At most 10 frames are returned.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

// NewNotFoundError creates a "not found" domain error.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a validation domain error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a conflict domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that can report their creation stack.
// The API layer uses it to log the error origin.
type Stacker interface {
	Stack() []string
}
