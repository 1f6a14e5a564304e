package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned when required fields are missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a unique field is already taken.
	ErrConflict = errors.New("already exists")
	// ErrUnauthorized is returned for bad credentials and invalid, expired or missing tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when a resource is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrPersistence is returned when the store fails unexpectedly.
	ErrPersistence = errors.New("persistence failure")
	// ErrRevocationUnavailable is returned when a logout cannot be recorded.
	ErrRevocationUnavailable = errors.New("token revocation unavailable")

	// ErrNoteNotFound is returned when a note does not exist for the caller.
	ErrNoteNotFound = fmt.Errorf("note %w", ErrNotFound)
	// ErrTagNotFound is returned when no tag carries the requested name.
	ErrTagNotFound = fmt.Errorf("tag %w", ErrNotFound)
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = fmt.Errorf("user %w", ErrConflict)
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	// ErrInvalidToken is returned when a bearer token cannot be trusted.
	ErrInvalidToken = fmt.Errorf("invalid or expired token: %w", ErrUnauthorized)
)

// Validation wraps ErrValidation with a client facing reason.
func Validation(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

// Persistence wraps a store error so it maps to a 500 without leaking details.
func Persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Conflicts surface as 400, and missing or foreign resources are
// indistinguishable 404s.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *validationError
	switch {
	case errors.As(err, &ve):
		return NewHTTPError(http.StatusBadRequest, ve.msg, "VALIDATION_ERROR")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, "invalid request", "VALIDATION_ERROR")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, "user already exists", "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusBadRequest, "already exists", "CONFLICT")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "invalid email or password", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, "invalid or expired token", "UNAUTHORIZED")
	case errors.Is(err, ErrNoteNotFound):
		return NewHTTPError(http.StatusNotFound, "note not found", "NOTE_NOT_FOUND")
	case errors.Is(err, ErrTagNotFound):
		return NewHTTPError(http.StatusNotFound, "tag not found", "TAG_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "user not found", "USER_NOT_FOUND")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found", "NOT_FOUND")
	case errors.Is(err, ErrRevocationUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, "token revocation is unavailable", "REVOCATION_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
