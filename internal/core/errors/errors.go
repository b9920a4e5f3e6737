package errors

const (
	HttpInternalError     = "internal_error"
	HttpInvalidJsonError  = "invalid_json"
	HttpInvalidCsvError   = "invalid_csv"
	HttpValidationError   = "validation_failed"
	HttpInvalidQueryError = "invalid_query"
	HttpNoDataError       = "no_data"
)

// ErrorResponse is the error response body for every JSON endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
