package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/storefront/internal/errs"
)

// Validatable is implemented by request payloads.
//
// Validate returns validator.ValidationErrors for tag failures or
// CustomValidationErrors for rules tags cannot express.
type Validatable interface {
	Validate() error
}

var validate = validator.New()

// Struct runs the validator tags on v. Request types call it from Validate.
func Struct(v any) error {
	return validate.Struct(v)
}

// CustomValidationError is a single validation issue for a field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error so Validate can return it.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds the request into payload, which must be a pointer,
// and validates it. Failures come back as *errs.HTTPError values: bind
// errors keep Echo's status (e.g. 415), validation errors are 400.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	return Validate(payload)
}

// Validate runs payload's rules without binding anything from the request.
func Validate(payload Validatable) error {
	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindError converts an Echo bind error into an *errs.HTTPError. Anything
// that is not an *echo.HTTPError is treated as a malformed body.
func bindError(err error) *errs.HTTPError {
	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) || echoErr.Code == http.StatusBadRequest {
		return errs.NewBadRequestError(bindErrorMessage(echoErr), false, nil, nil, nil)
	}

	return &errs.HTTPError{
		Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
		Message: bindErrorMessage(echoErr),
		Status:  echoErr.Code,
	}
}

// bindErrorMessage extracts the client-facing text from an Echo bind error.
func bindErrorMessage(echoErr *echo.HTTPError) string {
	if echoErr != nil {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request body"
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if fe.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}

		case "max":
			if fe.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())

		case "email":
			msg = "must be a valid email address"

		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, fe.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
