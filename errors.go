// Package sgemmbench structured error types
package sgemmbench

import (
	"errors"
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Invalid argument errors
	ErrTypeInvalidArg ErrorType = iota
	// Execution errors
	ErrTypeExecution
	// File and directory errors
	ErrTypeIO
	// Not implemented errors
	ErrTypeNotImplemented
)

// BenchError represents a structured error with context
type BenchError struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *BenchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *BenchError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeExecution:
		return "Execution"
	case ErrTypeIO:
		return "IO"
	case ErrTypeNotImplemented:
		return "NotImplemented"
	default:
		return "Unknown"
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &BenchError{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewExecutionError creates an execution error
func NewExecutionError(op string, message string, err error) error {
	return &BenchError{
		Type:    ErrTypeExecution,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewIOError creates a file or directory error
func NewIOError(op string, message string, err error) error {
	return &BenchError{
		Type:    ErrTypeIO,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewNotImplementedError creates an error for a feature missing from this build
func NewNotImplementedError(op string, message string, err error) error {
	return &BenchError{
		Type:    ErrTypeNotImplemented,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// ErrShapeMismatch is returned when the inner dimensions of a product differ.
var ErrShapeMismatch = NewInvalidArgError("Multiply", "inner dimensions do not match")

func isType(err error, t ErrorType) bool {
	var e *BenchError
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	return isType(err, ErrTypeInvalidArg)
}

// IsExecutionError checks if an error is an execution error
func IsExecutionError(err error) bool {
	return isType(err, ErrTypeExecution)
}

// IsNotImplementedError checks if an error names an unavailable feature
func IsNotImplementedError(err error) bool {
	return isType(err, ErrTypeNotImplemented)
}

// IsIOError checks if an error is a file or directory error
func IsIOError(err error) bool {
	return isType(err, ErrTypeIO)
}
