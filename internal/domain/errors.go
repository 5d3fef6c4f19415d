package domain

import (
	"errors"
	"net/http"
)

// ErrorCode is the stable, machine-readable error vocabulary exposed on the
// wire. Handlers map codes to HTTP statuses; messages are for humans.
type ErrorCode string

const (
	CodeInvalidInput    ErrorCode = "INVALID_INPUT"
	CodeInvalidPhone    ErrorCode = "INVALID_PHONE"
	CodeOTPExpired      ErrorCode = "OTP_EXPIRED"
	CodeOTPInvalid      ErrorCode = "OTP_INVALID"
	CodeTooManyAttempts ErrorCode = "TOO_MANY_ATTEMPTS"
	CodeSendFailed      ErrorCode = "SEND_FAILED"
	CodeNotAuthenticated ErrorCode = "NOT_AUTHENTICATED"
	CodeRequestNotFound  ErrorCode = "REQUEST_NOT_FOUND"
	CodeResendTooSoon    ErrorCode = "RESEND_TOO_SOON"
	CodeUserExists       ErrorCode = "USER_EXISTS"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeServerError      ErrorCode = "SERVER_ERROR"

	CodeAdminNotFound           ErrorCode = "ADMIN_NOT_FOUND"
	CodeAdminInvalidCredentials ErrorCode = "ADMIN_INVALID_CREDENTIALS"
	CodeAdminInactive           ErrorCode = "ADMIN_INACTIVE"

	CodeInstructorNotFound           ErrorCode = "INSTRUCTOR_NOT_FOUND"
	CodeInstructorInvalidCredentials ErrorCode = "INSTRUCTOR_INVALID_CREDENTIALS"
	CodeInstructorInactive           ErrorCode = "INSTRUCTOR_INACTIVE"
)

// Error is the domain error type carried from services to handlers.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

// E builds a typed domain error.
func E(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// IsCode reports whether err is a domain Error carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// HTTPStatus returns the HTTP status for an error code.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeNotAuthenticated, CodeAdminNotFound, CodeAdminInvalidCredentials,
		CodeInstructorNotFound, CodeInstructorInvalidCredentials:
		return http.StatusUnauthorized
	case CodeForbidden, CodeAdminInactive, CodeInstructorInactive:
		return http.StatusForbidden
	case CodeRequestNotFound:
		return http.StatusNotFound
	case CodeResendTooSoon:
		return http.StatusTooManyRequests
	case CodeSendFailed, CodeServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
