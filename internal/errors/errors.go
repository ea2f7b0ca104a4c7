package errors

import (
	"errors"
	"net/http"
)

// Machine-readable error codes carried in every error envelope.
const (
	CodeTokenMissing            = "TOKEN_MISSING"
	CodeTokenExpired            = "TOKEN_EXPIRED"
	CodeTokenMalformed          = "TOKEN_MALFORMED"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeValidationError         = "VALIDATION_ERROR"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeForbidden               = "FORBIDDEN"
	CodeNotFound                = "NOT_FOUND"
	CodeUserFetchError          = "USER_FETCH_ERROR"
	CodeUserCreationFailed      = "USER_CREATION_FAILED"
	CodeUserUpdateFailed        = "USER_UPDATE_FAILED"
	CodeUserDeletionFailed      = "USER_DELETION_FAILED"
	CodeTaskFetchError          = "TASK_FETCH_ERROR"
	CodeTaskCreationFailed      = "TASK_CREATION_FAILED"
	CodeTaskUpdateFailed        = "TASK_UPDATE_FAILED"
	CodeTaskDeletionFailed      = "TASK_DELETION_FAILED"
	CodeBusinessFetchError      = "BUSINESS_FETCH_ERROR"
	CodeBusinessExists          = "BUSINESS_ALREADY_EXISTS"
	CodeRatingCreationFailed    = "RATING_CREATION_FAILED"
	CodeInternalError           = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a requested record does not exist or is tombstoned.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden is returned on self-service or privilege-escalation violations.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountInactive is returned when the account has been deactivated.
	ErrAccountInactive = errors.New("account is deactivated")
	// ErrBusinessExists is returned when signing up an already registered business.
	ErrBusinessExists = errors.New("business already registered")
)

// HTTPError represents an HTTP error with status code and envelope code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    interface{}
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

// WithDetails attaches diagnostic details to the error.
func (e *HTTPError) WithDetails(details interface{}) *HTTPError {
	e.Details = details
	return e
}

// MapErrorToHTTP maps domain errors to HTTP errors. fallbackCode is used
// for unexpected errors so each resource keeps its own failure code.
func MapErrorToHTTP(err error, fallbackCode string) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), CodeNotFound)
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), CodeForbidden)
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAccountInactive):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), CodeUnauthorized)
	case errors.Is(err, ErrBusinessExists):
		return NewHTTPError(http.StatusConflict, err.Error(), CodeBusinessExists)
	default:
		if fallbackCode == "" {
			fallbackCode = CodeInternalError
		}
		return NewHTTPError(http.StatusInternalServerError, "internal server error", fallbackCode).
			WithDetails(err.Error())
	}
}
