package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the sender is unknown or not allowed to use the ledger.
// Unknown and disabled senders are deliberately indistinguishable.
var ErrUnauthorized = errors.New("unauthorized sender")

// ErrForbidden indicates an authenticated user asked for something above their role.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCurrency indicates a malformed or unrecognised ISO 4217 code.
var ErrInvalidCurrency = errors.New("invalid currency")

// ErrRateUnavailable indicates the FX source failed or returned a non-positive rate.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrConversionFailed indicates a value could not be converted into the target currency.
var ErrConversionFailed = errors.New("currency conversion failed")

// ErrStorage indicates the backing repository failed.
var ErrStorage = errors.New("storage failure")

// AppError carries an error kind together with an HTTP status code for the admin API.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped kind to errors.Is.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a message.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewStorageError wraps a driver error so that errors.Is(err, ErrStorage) holds
// while the original cause is still reachable for logging.
func NewStorageError(message string, err error) error {
	return NewAppError(http.StatusInternalServerError, message, fmt.Errorf("%w: %w", ErrStorage, err))
}

// HTTPStatus maps an error kind to the status code used by the admin API.
func HTTPStatus(err error) int {
	var appErr *AppError
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidCurrency):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}
