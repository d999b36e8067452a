// Package domain defines core types, interfaces, and errors for the data mesh catalog.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate product name).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// CapacityError indicates a collection is at its configured bound.
type CapacityError struct {
	Message string
}

func (e *CapacityError) Error() string { return e.Message }

// InvalidReferenceError indicates a lineage entry names a nonexistent product.
type InvalidReferenceError struct {
	Message string
}

func (e *InvalidReferenceError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrCapacity creates a CapacityError with a formatted message.
func ErrCapacity(format string, args ...interface{}) *CapacityError {
	return &CapacityError{Message: fmt.Sprintf(format, args...)}
}

// ErrInvalidReference creates an InvalidReferenceError with a formatted message.
func ErrInvalidReference(format string, args ...interface{}) *InvalidReferenceError {
	return &InvalidReferenceError{Message: fmt.Sprintf(format, args...)}
}
