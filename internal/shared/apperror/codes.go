package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeTooMany      = "TOO_MANY_REQUESTS"
	CodeProcessing   = "PROCESSING"

	// Server errors (5xx)
	CodeInternalError = "INTERNAL_ERROR"
)
