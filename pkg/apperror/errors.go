package apperror

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string   `json:"error_code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"` // Ordered business-rule violations
	HTTPStatus int      `json:"-"`
	Err        error    `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Ledger Business Logic (LEDGER) ----

// ValidationFailed carries the complete ordered violation list for a
// rejected transfer. Never retried by the service.
func ValidationFailed(violations []string) *AppError {
	return &AppError{
		Code:       "LEDGER_001",
		Message:    strings.Join(violations, "; "),
		Violations: violations,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ErrContention signals that optimistic-concurrency retries were exhausted.
// Distinct from validation failure: the caller may resubmit.
func ErrContention() *AppError {
	return New("LEDGER_002", "Transfer aborted after repeated conflicts, please retry", http.StatusConflict)
}

func ErrAccountNotFound() *AppError {
	return New("LEDGER_003", "Account not found", http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email already registered", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps a store or infrastructure failure as a SYS_001 error.
// The cause is preserved for logging but never exposed to the client.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a single-message validation error for malformed input.
func Validation(message string) *AppError {
	return &AppError{
		Code:       "LEDGER_001",
		Message:    message,
		Violations: []string{message},
		HTTPStatus: http.StatusBadRequest,
	}
}
