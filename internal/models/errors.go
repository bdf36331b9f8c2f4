package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors in the system
type ErrorType string

const (
	ErrTypeValidation ErrorType = "validation"
	ErrTypeNotFound   ErrorType = "not_found"
	ErrTypeConflict   ErrorType = "conflict"
	ErrTypeStorage    ErrorType = "storage"
	ErrTypeSystem     ErrorType = "system"
)

// DiaryError represents a structured error with type and context
type DiaryError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *DiaryError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error
func (e *DiaryError) Unwrap() error {
	return e.Cause
}

// NewDiaryError creates a new DiaryError with the given type and message
func NewDiaryError(errType ErrorType, message string) *DiaryError {
	return &DiaryError{
		Type:    errType,
		Message: message,
	}
}

// NewDiaryErrorWithCause creates a new DiaryError with an underlying cause
func NewDiaryErrorWithCause(errType ErrorType, message string, cause error) *DiaryError {
	return &DiaryError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Constraint violations reported by the record store. Compare with errors.Is.
var (
	ErrDuplicateDate = NewDiaryError(ErrTypeConflict, "an entry for this date already exists")
	ErrEntryNotFound = NewDiaryError(ErrTypeNotFound, "entry not found")
	ErrAtBoundary    = NewDiaryError(ErrTypeValidation, "entry cannot move past the end of the list")
	ErrFieldTooLong  = NewDiaryError(ErrTypeValidation, "field too long")
)

// NewFieldTooLongError reports which field overflowed. It unwraps to ErrFieldTooLong.
func NewFieldTooLongError(field string, got, max int) *DiaryError {
	return &DiaryError{
		Type:    ErrTypeValidation,
		Message: fmt.Sprintf("%s is too long", field),
		Details: fmt.Sprintf("%d bytes, limit is %d", got, max),
		Cause:   ErrFieldTooLong,
	}
}

// IsType reports whether err is a DiaryError of the given type
func IsType(err error, errType ErrorType) bool {
	var de *DiaryError
	return errors.As(err, &de) && de.Type == errType
}
