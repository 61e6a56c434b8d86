package errors

// ErrorResponse is the JSON structure used when an error is reported to a
// caller outside the process (CLI output, host framework replies).
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to callers.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}

// ResponseFor converts any error into an ErrorResponse. Errors that are not
// AppErrors are reported as internal errors.
func ResponseFor(err error) ErrorResponse {
	if appErr, ok := AsAppError(err); ok {
		return appErr.ToResponse()
	}
	return Internal(err).ToResponse()
}
