// Package errors provides structured error handling for Strata
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeData represents storage-engine data errors (coercion
	// overflow, ragged column lengths, duplicate names)
	ErrorTypeData ErrorType = "data"
	// ErrorTypeUnsupportedInput represents a construction input whose
	// runtime type matches no recognized family
	ErrorTypeUnsupportedInput ErrorType = "unsupported_input"
	// ErrorTypeSchemaLength represents a declared name/type count that
	// disagrees with the number of columns actually present
	ErrorTypeSchemaLength ErrorType = "schema_length"
	// ErrorTypeInference represents irreconcilable value types found
	// within one column while sampling
	ErrorTypeInference ErrorType = "inference"
	// ErrorTypeUnknownOverride represents an override key that matches
	// no column in the resolved schema
	ErrorTypeUnknownOverride ErrorType = "unknown_override"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Detail returns the detail stored under key, or nil
func (e *Error) Detail(key string) interface{} {
	if e.Details == nil {
		return nil
	}
	return e.Details[key]
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// UnsupportedInput reports a construction input outside all recognized
// families, naming its concrete runtime type.
func UnsupportedInput(v interface{}) *Error {
	return Newf(ErrorTypeUnsupportedInput, "unsupported input type %T", v).
		WithDetail("go_type", fmt.Sprintf("%T", v))
}

// SchemaLengthMismatch reports a declared column count that does not
// match the column count present in the data.
func SchemaLengthMismatch(declared, actual int) *Error {
	return Newf(ErrorTypeSchemaLength,
		"declared schema has %d columns, data has %d", declared, actual).
		WithDetail("declared", declared).
		WithDetail("actual", actual)
}

// InferenceConflict reports two irreconcilable value kinds found in one
// column, naming the row index of the later value.
func InferenceConflict(column, kindA, kindB string, row int) *Error {
	return Newf(ErrorTypeInference,
		"column %q: cannot unify %s with %s at row %d", column, kindA, kindB, row).
		WithDetail("column", column).
		WithDetail("kind_a", kindA).
		WithDetail("kind_b", kindB).
		WithDetail("row", row)
}

// UnknownOverride reports an override key absent from the resolved schema.
func UnknownOverride(key string, known []string) *Error {
	return Newf(ErrorTypeUnknownOverride,
		"override column %q not present in schema", key).
		WithDetail("column", key).
		WithDetail("known", known)
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
