// Package server provides the HTTP REST API for CareerMirror.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Srujan0798/CareerMirror/internal/auth"
	"github.com/Srujan0798/CareerMirror/internal/generation"
	"github.com/Srujan0798/CareerMirror/internal/plan"
	"github.com/Srujan0798/CareerMirror/internal/store"
)

// ErrInvalidCredentials indicates invalid login credentials. It is
// deliberately generic: unknown email and wrong password read the same.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Error codes carried in response bodies. The two 401 causes stay
// distinct so clients can prompt re-login only on expiry.
const (
	CodeUnauthenticated    = "unauthenticated"
	CodeSessionExpired     = "session_expired"
	CodeInvalidCredentials = "invalid_credentials"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeQuotaExceeded      = "quota_exceeded"
	CodeInsufficientInput  = "insufficient_input"
	CodeGenerationFailed   = "generation_failed"
	CodeEmailExists        = "email_exists"
	CodeValidation         = "validation_error"
	CodeInternal           = "internal_error"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var quota *plan.QuotaError
	var validation *ErrValidation
	var credentials *ErrInvalidCredentials

	switch {
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, store.ErrSessionExpired),
		errors.As(err, &credentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFoundOrForbidden),
		errors.Is(err, store.ErrResumeNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound
	case errors.As(err, &quota):
		return http.StatusPaymentRequired
	case errors.Is(err, generation.ErrInsufficientInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, store.ErrDuplicateUser):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the machine-readable code for an error
func ErrorCode(err error) string {
	var quota *plan.QuotaError
	var validation *ErrValidation
	var credentials *ErrInvalidCredentials

	switch {
	case errors.Is(err, store.ErrSessionExpired):
		return CodeSessionExpired
	case errors.As(err, &credentials):
		return CodeInvalidCredentials
	case errors.Is(err, auth.ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, auth.ErrForbidden):
		return CodeForbidden
	case errors.Is(err, store.ErrNotFoundOrForbidden),
		errors.Is(err, store.ErrResumeNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return CodeNotFound
	case errors.As(err, &quota):
		return CodeQuotaExceeded
	case errors.Is(err, generation.ErrInsufficientInput):
		return CodeInsufficientInput
	case errors.Is(err, generation.ErrGenerationFailed):
		return CodeGenerationFailed
	case errors.Is(err, store.ErrDuplicateUser):
		return CodeEmailExists
	case errors.As(err, &validation):
		return CodeValidation
	default:
		return CodeInternal
	}
}
