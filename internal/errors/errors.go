package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match wrapped domain errors by code.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Credential errors. UnknownIdentity and InvalidSecret are kept
	// distinct because the login endpoint reports different messages for
	// them; this is a known user-enumeration risk carried over on purpose.
	ErrUnknownIdentity = NewDomainError("UNKNOWN_IDENTITY", "email not found")
	ErrInvalidSecret   = NewDomainError("INVALID_SECRET", "incorrect password")
	ErrEmailExists     = NewDomainError("EMAIL_EXISTS", "email already exists")

	// Session errors
	ErrUnauthenticated = NewDomainError("UNAUTHENTICATED", "unauthenticated")
	ErrForbidden       = NewDomainError("FORBIDDEN", "insufficient role")

	// Reset-token errors
	ErrInvalidToken = NewDomainError("INVALID_TOKEN", "invalid reset token")
	ErrExpiredToken = NewDomainError("EXPIRED_TOKEN", "reset token has expired or was already used")

	// Validation errors
	ErrPasswordMismatch  = NewDomainError("PASSWORD_MISMATCH", "password confirmation does not match")
	ErrIncorrectPassword = NewDomainError("INCORRECT_PASSWORD", "old password is incorrect")
	ErrUserNotFound      = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrRecordNotFound    = NewDomainError("RECORD_NOT_FOUND", "record not found")

	// System errors
	ErrTooManyRequests = NewDomainError("TOO_MANY_REQUESTS", "too many requests")
	ErrInternal        = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrMailDelivery    = NewDomainError("MAIL_DELIVERY_FAILED", "failed to send email")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes.
// This should only be used in the handler/presentation layer.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request. The observed contract reports an unknown login
	// email as 400 and a wrong password as 401.
	case "UNKNOWN_IDENTITY", "INVALID_TOKEN", "EXPIRED_TOKEN":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHENTICATED", "INVALID_SECRET":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "RECORD_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS":
		return http.StatusConflict

	// 422 Unprocessable Entity: field-level failures, including the
	// old-password mismatch on the change-password endpoint.
	case "PASSWORD_MISMATCH", "INCORRECT_PASSWORD":
		return http.StatusUnprocessableEntity

	// 429 Too Many Requests
	case "TOO_MANY_REQUESTS":
		return http.StatusTooManyRequests

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
