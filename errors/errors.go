package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError là custom error type cho application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// Is reports whether target is an AppError with the same code, so callers can
// write errors.Is(err, errors.ErrNotFound("")).
func (e AppError) Is(target error) bool {
	t, ok := target.(AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// WithHint attaches a corrective suggestion shown to the user.
func (e AppError) WithHint(hint string) AppError {
	return e.WithDetail("hint", hint)
}

// Hint returns the corrective suggestion, if any.
func (e AppError) Hint() string {
	return e.Details["hint"]
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal server error",
		Timestamp: time.Now(),
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_NOT_FOUND,
		Message:   fmt.Sprintf("%s not found", resource),
		Timestamp: time.Now(),
	}.WithDetail("resource", resource)
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_UNAUTHENTICATED,
		Message:   "Authentication required",
		Timestamp: time.Now(),
	}
}

// ErrConfiguration is returned when a required setting, usually an API key,
// is missing. It is detected before any upstream call is made.
func ErrConfiguration(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusServiceUnavailable,
		Code:      ErrorCode_CONFIGURATION,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Audio input errors
func ErrUnsupportedFormat(detected, path string) AppError {
	if detected == "" {
		detected = "unknown"
	}
	return AppError{
		HTTPCode:  http.StatusUnsupportedMediaType,
		Code:      ErrorCode_UNSUPPORTED_FORMAT,
		Message:   fmt.Sprintf("Unsupported audio format: %s", detected),
		Timestamp: time.Now(),
	}.WithDetail("path", path).
		WithDetail("detected", detected)
}

func ErrIncompatibleFormat(model, format, suggested string, allowed []string) AppError {
	e := AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INCOMPATIBLE_FORMAT,
		Message:   fmt.Sprintf("Model %q does not support response format %q", model, format),
		Timestamp: time.Now(),
	}.WithDetail("model", model).
		WithDetail("format", format)
	if len(allowed) > 0 {
		e = e.WithDetail("allowed_formats", fmt.Sprintf("%v", allowed))
	}
	if suggested != "" {
		e = e.WithHint(fmt.Sprintf("use model %q for format %q, or pick one of %v", suggested, format, allowed))
	}
	return e
}

// Upstream errors
func ErrUpstreamFailure(service string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_UPSTREAM_FAILURE,
		Message:   fmt.Sprintf("Upstream call failed: %s", service),
		Timestamp: time.Now(),
	}.WithDetail("service", service)
}

func ErrMalformedResponse(service string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_MALFORMED_RESPONSE,
		Message:   fmt.Sprintf("Malformed response from %s", service),
		Timestamp: time.Now(),
	}.WithDetail("service", service)
}

func ErrUpstreamRateLimited(service string) AppError {
	return AppError{
		HTTPCode:  http.StatusTooManyRequests,
		Code:      ErrorCode_UPSTREAM_RATE_LIMIT,
		Message:   "AI service quota exceeded",
		Timestamp: time.Now(),
	}.WithDetail("service", service)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:   fmt.Sprintf("Storage operation failed: %s", operation),
		Timestamp: time.Now(),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:   fmt.Sprintf("Cache operation failed: %s", operation),
		Timestamp: time.Now(),
	}
}

// Database Errors
func ErrDBConnectionFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_CONNECTION_FAILED,
		Message:   "Database connection failed",
		Timestamp: time.Now(),
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_QUERY_FAILED,
		Message:   "Database query failed",
		Timestamp: time.Now(),
	}.WithDetail("query", query)
}
