package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure class across the service.
type ErrorCode string

const (
	// Validation (1xxx)
	CodeValidation     ErrorCode = "VALID_1001"
	CodeMissingField   ErrorCode = "VALID_1002"
	CodeMalformedInput ErrorCode = "VALID_1003"

	// Conflict (2xxx)
	CodeDuplicateEmail ErrorCode = "CONFLICT_2001"

	// Auth (3xxx) — one uniform client message for the whole class to avoid
	// account enumeration.
	CodeNoToken            ErrorCode = "AUTH_3001"
	CodeInvalidToken       ErrorCode = "AUTH_3002"
	CodeTokenExpired       ErrorCode = "AUTH_3003"
	CodeTokenRevoked       ErrorCode = "AUTH_3004"
	CodeInvalidCredentials ErrorCode = "AUTH_3005"
	CodeAccountGone        ErrorCode = "AUTH_3006"

	// Reset tickets surface as bad input at the edge, not as a 401.
	CodeInvalidTicket ErrorCode = "AUTH_3007"

	// Forbidden (4xxx)
	CodeForbidden ErrorCode = "FORBIDDEN_4001"

	// Not found (5xxx)
	CodeNotFound ErrorCode = "NOTFOUND_5001"

	// Upstream (6xxx)
	CodeUpstream ErrorCode = "UPSTREAM_6001"

	// Internal (7xxx)
	CodeInternal ErrorCode = "INTERNAL_7001"
)

// AppError is the structured error carried from usecases to the HTTP edge.
// Message is safe to show a client; Details and Cause are log-only.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"-"`
	Cause   error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message, details string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Details: details, Cause: cause}
}

func Validation(message string) *AppError {
	return New(CodeValidation, message, "", nil)
}

func MissingField(field string) *AppError {
	return New(CodeMissingField, "Missing required field", fmt.Sprintf("field: %s", field), nil)
}

func DuplicateEmail() *AppError {
	return New(CodeDuplicateEmail, "Email is already registered", "", nil)
}

// InvalidCredentials is deliberately identical for unknown email and wrong
// password.
func InvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "Invalid credentials", "", nil)
}

func NoToken() *AppError {
	return New(CodeNoToken, "No token provided", "", nil)
}

func InvalidToken(details string) *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", details, nil)
}

func TokenRevoked() *AppError {
	return New(CodeTokenRevoked, "Token is invalidated", "", nil)
}

func InvalidTicket() *AppError {
	return New(CodeInvalidTicket, "Invalid or expired token", "", nil)
}

func AccountGone() *AppError {
	return New(CodeAccountGone, "User not found", "", nil)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, "", nil)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), "", nil)
}

func Upstream(service string, cause error) *AppError {
	return New(CodeUpstream, "Upstream service failure", fmt.Sprintf("service: %s", service), cause)
}

func Internal(cause error) *AppError {
	return New(CodeInternal, "Internal server error", "", cause)
}

// HTTPStatus maps an error to the status code the edge should return.
// Unrecognized errors fall through to 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation, CodeMissingField, CodeMalformedInput, CodeDuplicateEmail,
		CodeInvalidTicket:
		return http.StatusBadRequest
	case CodeNoToken, CodeInvalidToken, CodeTokenExpired, CodeTokenRevoked,
		CodeInvalidCredentials, CodeAccountGone:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
