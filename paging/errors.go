package paging

import (
	"errors"
	"fmt"
)

// ErrorCode represents different types of simulation errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Configuration errors
	ErrCodeInvalidConfig
	ErrCodeUnknownPolicy

	// Frame table errors
	ErrCodeInvalidSlot

	// Archive errors
	ErrCodeArchiveCorrupted
)

// SimError represents a simulation error with context
type SimError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulation error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Sentinels for errors.Is comparisons
var (
	ErrInvalidConfigCode    = &SimError{Code: ErrCodeInvalidConfig}
	ErrUnknownPolicyCode    = &SimError{Code: ErrCodeUnknownPolicy}
	ErrArchiveCorruptedCode = &SimError{Code: ErrCodeArchiveCorrupted}
)

// Helper functions for common errors

func ErrInvalidConfig(op, format string, args ...any) *SimError {
	return NewSimError(
		ErrCodeInvalidConfig,
		op,
		fmt.Sprintf(format, args...),
		nil,
	)
}

func ErrUnknownPolicy(op, name string) *SimError {
	return NewSimError(
		ErrCodeUnknownPolicy,
		op,
		fmt.Sprintf("unknown replacement policy %q", name),
		nil,
	)
}

func ErrInvalidSlot(op string, slot, frameSize int) *SimError {
	return NewSimError(
		ErrCodeInvalidSlot,
		op,
		fmt.Sprintf("slot %d out of range [0, %d)", slot, frameSize),
		nil,
	)
}

func ErrArchiveCorrupted(op, message string, err error) *SimError {
	return NewSimError(
		ErrCodeArchiveCorrupted,
		op,
		message,
		err,
	)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeUnknown
}
