package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. Message is safe to show to API clients.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

var (
	ErrTaskNotFound     = NewError(ErrCodeNotFound, "Task not found")
	ErrTitleRequired    = NewError(ErrCodeInvalid, "Title is required")
	ErrInvalidStatus    = NewError(ErrCodeInvalid, "Invalid status")
	ErrNoFieldsToUpdate = NewError(ErrCodeInvalid, "No fields to update")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "Invalid JSON format")
	ErrInvalidTaskID    = NewError(ErrCodeInvalid, "Invalid task id")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// PublicMessage returns the client-facing message of the outermost domain error.
func PublicMessage(err error) string {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Message
	}
	return "Internal Server Error"
}
