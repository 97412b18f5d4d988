package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents application-specific error codes
type ErrorCode string

const (
	// Authentication errors (1xxx)
	ErrCodeInvalidCredentials ErrorCode = "E1002"
	ErrCodeAccountDeactivated ErrorCode = "E1006"

	// Validation errors (2xxx)
	ErrCodeValidation ErrorCode = "E2001"

	// Resource errors (3xxx)
	ErrCodeNotFound      ErrorCode = "E3001"
	ErrCodeAlreadyExists ErrorCode = "E3002"

	// Password reset errors (4xxx)
	ErrCodeOTPExpired       ErrorCode = "E4001"
	ErrCodeOTPInvalid       ErrorCode = "E4002"
	ErrCodePasswordMismatch ErrorCode = "E4003"

	// Internal errors (9xxx)
	ErrCodeInternal ErrorCode = "E9001"
	ErrCodeDatabase ErrorCode = "E9002"
)

// AppError represents an application error with context
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Field      string    `json:"field,omitempty"`
	HTTPStatus int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: getHTTPStatus(code),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: getHTTPStatus(code),
		Cause:      err,
	}
}

// ============================================================
// Predefined error constructors
// ============================================================

// Validation builds a field-level validation error.
func Validation(field, message string) *AppError {
	e := New(ErrCodeValidation, message)
	e.Field = field
	return e
}

// InvalidCredentials covers bad email/password combinations on login.
func InvalidCredentials() *AppError {
	return New(ErrCodeInvalidCredentials, "invalid email or password")
}

// AccountDeactivated covers logins against an inactive account.
func AccountDeactivated() *AppError {
	return New(ErrCodeAccountDeactivated, "account is deactivated")
}

// NotFound covers references to an absent user or email.
func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message)
}

// AlreadyExists covers unique-field collisions at registration.
func AlreadyExists(message string) *AppError {
	return New(ErrCodeAlreadyExists, message)
}

// OTPInvalid covers verification with a code that was never generated.
func OTPInvalid() *AppError {
	return New(ErrCodeOTPInvalid, "Invalid OTP.")
}

// OTPExpired covers verification with a code past its validity window.
func OTPExpired() *AppError {
	return New(ErrCodeOTPExpired, "OTP has expired.")
}

// PasswordMismatch covers a reset where the confirmation differs.
func PasswordMismatch() *AppError {
	return New(ErrCodePasswordMismatch, "Passwords do not match.")
}

// Internal covers unexpected failures.
func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

// Database wraps a storage failure.
func Database(err error) *AppError {
	return Wrap(err, ErrCodeDatabase, "database error")
}

// ============================================================
// Helper functions
// ============================================================

func getHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case ErrCodeAccountDeactivated:
		return http.StatusForbidden
	case ErrCodeValidation, ErrCodeAlreadyExists,
		ErrCodeOTPExpired, ErrCodeOTPInvalid, ErrCodePasswordMismatch:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AsAppError converts an error to AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
