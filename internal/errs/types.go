package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "price", "error": "Dish must have a price that is an integer greater than 0" }
type FieldError struct {
	// Field is the payload key the error relates to (e.g. "price" or "dishes[2].quantity").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It is serialized directly as the error body. The human-readable message
// goes out under the "error" key:
//
//	{ "error": "Dish id not found: 42", "code": "NOT_FOUND", "status": 404, ... }
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"error"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, &HTTPError{}) report whether err is any *HTTPError.
// It does not compare Code or Status; use errors.As and inspect the fields for that.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
