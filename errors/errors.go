package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified error type returned by providers.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// AsAppError extracts an AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err's chain contains an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// --- Constructors ---

// Configuration creates an error for a malformed provider payload.
func Configuration(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: fmt.Sprintf("Invalid resource configuration: %s", reason),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	msg := fmt.Sprintf("The requested %s was not found.", resource)
	if id != "" {
		msg = fmt.Sprintf("The requested %s %q was not found.", resource, id)
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: msg,
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// AmbiguousSelection creates an error for GetContent on a provider owning
// several resources.
func AmbiguousSelection(provider string, count int) *AppError {
	return &AppError{
		Code:       ErrCodeAmbiguousSelection,
		Message:    fmt.Sprintf("Provider %q has %d resources and requires a named resource selection.", provider, count),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"provider": provider, "count": count},
	}
}

// UnconfiguredHandler creates an error for a function-dispatch descriptor
// that names no handler.
func UnconfiguredHandler(resource string) *AppError {
	return &AppError{
		Code:       ErrCodeUnconfiguredHandler,
		Message:    fmt.Sprintf("No function specified for resource %q.", resource),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"resource": resource},
	}
}

// HandlerNotFound creates an error for a handler name with no registered function.
func HandlerNotFound(handler string) *AppError {
	return &AppError{
		Code:       ErrCodeHandlerNotFound,
		Message:    fmt.Sprintf("Function %q not found in resource provider.", handler),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"handler": handler},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// InvalidTarget creates an error for a resolved URI outside http/https.
func InvalidTarget(url string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidTarget,
		Message:    fmt.Sprintf("Invalid URL scheme for public resource: %s", url),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"url": url},
	}
}

// UpstreamStatus creates an error for a non-200 upstream response.
func UpstreamStatus(status int, url string) *AppError {
	return &AppError{
		Code:       ErrCodeUpstreamStatus,
		Message:    fmt.Sprintf("HTTP error %d when fetching %s", status, url),
		HTTPStatus: http.StatusBadGateway, Retryable: status >= http.StatusInternalServerError,
		Details: map[string]any{"status": status, "url": url},
	}
}

// Transport creates an error for a network failure while fetching url.
func Transport(url string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeTransport,
		Message:    fmt.Sprintf("Failed to fetch resource from %s", url),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"url": url}, Cause: cause,
	}
}

// Timeout creates a new AppError for a request that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long. Please try again.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation},
	}
}

// Unexpected creates an error for any other failure while fetching url.
func Unexpected(url string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    fmt.Sprintf("Unexpected error fetching %s", url),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"url": url}, Cause: cause,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
