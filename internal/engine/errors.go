package engine

import (
	"errors"
	"fmt"
)

// Error is the error type returned by every Engine operation.
//
// Message is human-readable and safe to return to clients; it never carries
// internal detail. Err holds the underlying cause, if any, for logging.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause (optional).
	Err error
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeBadRequest indicates malformed or missing input.
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"

	// ErrCodeUnprocessable indicates well-formed input of the wrong type.
	ErrCodeUnprocessable ErrorCode = "UNPROCESSABLE_INPUT"

	// ErrCodeConflict indicates the string is already stored.
	ErrCodeConflict ErrorCode = "CONFLICT"

	// ErrCodeNotFound indicates no record exists for the string.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInvalidArgument indicates a filter value that cannot be applied.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeInternal indicates a storage failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf extracts the ErrorCode from err.
// Returns ErrCodeInternal for errors that are not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// IsConflict returns true if err is a duplicate-create error.
func IsConflict(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeConflict
}

// IsNotFound returns true if err is a lookup or delete miss.
func IsNotFound(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeNotFound
}

// IsInvalidArgument returns true if err is a rejected filter value.
func IsInvalidArgument(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeInvalidArgument
}

func errConflict() *Error {
	return NewError(ErrCodeConflict, "String already exists")
}

func errNotFound() *Error {
	return NewError(ErrCodeNotFound, "String not found")
}

func errInternal(cause error) *Error {
	return &Error{Code: ErrCodeInternal, Message: "Internal server error", Err: cause}
}
