package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/grubdash/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// validate is shared; validator caches struct metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Body-carrying requests run their resource Schema over the `data` payload.
// Route-only requests run ValidateStruct over their `validate` tags.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// Schema rules return it; the message is sent to the client verbatim.
type CustomValidationError struct {
	Field   string
	Message string
}

func (c *CustomValidationError) Error() string {
	return c.Message
}

// ValidateStruct runs validator tags on s.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// Bind populates payload from route params and the JSON body.
//
// Malformed bodies and type mismatches become a 400 with echo's message.
// NOTE: payload must be a pointer to a struct.
func Bind(c echo.Context, payload any) error {
	if err := c.Bind(payload); err != nil {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if message, ok := echoErr.Message.(string); ok {
				return errs.NewBadRequestError(message, false, nil, nil)
			}
		}
		return errs.ValidationError(err)
	}
	return nil
}

// Validate runs payload.Validate() and converts failures into a 400 *errs.HTTPError.
func Validate(payload Validatable) error {
	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}
	return nil
}

// BindAndValidate binds request data into payload and validates it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := Bind(c, payload); err != nil {
		return err
	}
	return Validate(payload)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	// Schema rules: one field, message used as the response message.
	var custom *CustomValidationError
	if errors.As(err, &custom) {
		return custom.Message, []errs.FieldError{{Field: custom.Field, Error: custom.Message}}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), nil
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "uuid":
			msg = "must be a valid UUID"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
