package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodePayment      = "PAYMENT_REQUIRED"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeRateLimited  = "RATE_LIMITED"
	CodeMediaType    = "UNSUPPORTED_MEDIA_TYPE"
)

var statusByCode = map[string]int{
	CodeNotFound:     http.StatusNotFound,
	CodeValidation:   http.StatusUnprocessableEntity,
	CodeInvalidInput: http.StatusBadRequest,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,
	CodePayment:      http.StatusPaymentRequired,
	CodeConflict:     http.StatusConflict,
	CodeInternal:     http.StatusInternalServerError,
	CodeTimeout:      http.StatusGatewayTimeout,
	CodeUnavailable:  http.StatusServiceUnavailable,
	CodeRateLimited:  http.StatusTooManyRequests,
	CodeMediaType:    http.StatusUnsupportedMediaType,
}

// AppError is what handlers turn into an HTTP response. Only Code, Message and
// Details reach the client.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) StatusCode() int { return e.HTTPStatus }

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{Code: e.Code, Message: e.Message, Details: e.Details})
	return data
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

func withCode(code, message string) *AppError {
	return New(code, message, statusByCode[code])
}

func NotFound(resource string) *AppError {
	return withCode(CodeNotFound, resource+" not found")
}

func NotFoundWithID(resource, id string) *AppError {
	return NotFound(resource).WithDetails(map[string]any{"resource": resource, "id": id})
}

func Validation(message string, details map[string]any) *AppError {
	return withCode(CodeValidation, message).WithDetails(details)
}

// InvalidInput is a malformed or incomplete request body (400).
func InvalidInput(message string) *AppError { return withCode(CodeInvalidInput, message) }

func Unauthorized(message string) *AppError { return withCode(CodeUnauthorized, message) }

func Forbidden(message string) *AppError { return withCode(CodeForbidden, message) }

// PaymentRequired signals that the caller's ticket does not entitle them to the resource yet.
func PaymentRequired(message string) *AppError { return withCode(CodePayment, message) }

func Conflict(message string) *AppError { return withCode(CodeConflict, message) }

func Timeout(message string) *AppError { return withCode(CodeTimeout, message) }

func Unavailable(service string) *AppError {
	return withCode(CodeUnavailable, service+" is temporarily unavailable")
}

func TooManyRequests(message string) *AppError { return withCode(CodeRateLimited, message) }

func UnsupportedMediaType(message string) *AppError { return withCode(CodeMediaType, message) }

func Internal(message string, err error) *AppError {
	return Wrap(err, CodeInternal, message, statusByCode[CodeInternal])
}

// IsAppError reports whether err or anything it wraps is an *AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError unwraps to the first *AppError, or hides err behind a generic 500.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// HasCode reports whether err is an *AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
