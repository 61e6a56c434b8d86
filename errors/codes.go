package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors, raised while a provider is being constructed.
const (
	// ErrCodeConfiguration indicates a malformed provider or descriptor payload.
	ErrCodeConfiguration ErrorCode = "INVALID_CONFIGURATION"
)

// Selection errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAmbiguousSelection indicates a multi-resource provider was asked
	// for content without naming a resource.
	ErrCodeAmbiguousSelection ErrorCode = "AMBIGUOUS_SELECTION"
)

// Dispatch errors
const (
	// ErrCodeUnconfiguredHandler indicates a descriptor declares no handler.
	ErrCodeUnconfiguredHandler ErrorCode = "HANDLER_NOT_CONFIGURED"
	// ErrCodeHandlerNotFound indicates a declared handler has no registered function.
	ErrCodeHandlerNotFound ErrorCode = "HANDLER_NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidTarget indicates a resolved URI is not an http(s) target.
	ErrCodeInvalidTarget ErrorCode = "INVALID_TARGET"
)

// Upstream errors
const (
	// ErrCodeUpstreamStatus indicates an upstream answered with a non-200 status.
	ErrCodeUpstreamStatus ErrorCode = "UPSTREAM_STATUS"
	// ErrCodeTransport indicates a network-level failure talking to an upstream.
	ErrCodeTransport ErrorCode = "TRANSPORT_FAILED"
	// ErrCodeTimeout indicates the caller's deadline expired.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTransport: true,
	ErrCodeTimeout:   true,
	ErrCodeInternal:  false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Nothing in this module retries; the flag is informational for callers.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
