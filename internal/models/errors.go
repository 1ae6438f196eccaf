package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies application errors so the HTTP layer can pick a status
// code without inspecting message strings.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindGateway      ErrorKind = "gateway"
	KindInvariant    ErrorKind = "invariant"
	KindInternal     ErrorKind = "internal"
)

// AppError is the error type services return to handlers.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from an error chain, defaulting to internal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func NewValidationError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewForbiddenError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func NewInvariantError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindInvariant, Message: fmt.Sprintf(format, args...)}
}

// NewGatewayError wraps a payment gateway failure.
func NewGatewayError(message string, err error) *AppError {
	return &AppError{Kind: KindGateway, Message: message, Err: err}
}
