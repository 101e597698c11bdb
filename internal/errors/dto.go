package errors

// ErrorResponse is the envelope every failed request returns. It
// mirrors the shape written by the REST error handler so the swagger
// annotations can reference a single type.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the user-facing message plus any details marked
// safe for reporting.
type ErrorDetail struct {
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
