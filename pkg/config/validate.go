package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Sternrassler/site-paginate/pkg/paths"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report yaml key names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("pagepath", validatePagePath)
	return v
}

// validatePagePath checks that a path pattern carries the page placeholder.
func validatePagePath(fl validator.FieldLevel) bool {
	return strings.Contains(fl.Field().String(), paths.Placeholder)
}

// Validate checks the settings and returns a *paths.ConfigurationError
// describing the first problem found.
func (p Pagination) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate pagination: %w", err)
	}
	return toConfigurationError(fieldErrs[0])
}

func toConfigurationError(fe validator.FieldError) *paths.ConfigurationError {
	field := strings.TrimPrefix(fe.Namespace(), "Pagination.")

	switch fe.Tag() {
	case "pagepath":
		return &paths.ConfigurationError{
			Field: field,
			Value: fmt.Sprint(fe.Value()),
			Err:   paths.ErrMissingPlaceholder,
		}
	case "required":
		return &paths.ConfigurationError{Field: field, Err: errors.New("value is required")}
	case "gt", "gte":
		return &paths.ConfigurationError{
			Field: field,
			Value: fmt.Sprint(fe.Value()),
			Err:   fmt.Errorf("must be %s %s", comparison(fe.Tag()), fe.Param()),
		}
	default:
		return &paths.ConfigurationError{
			Field: field,
			Value: fmt.Sprint(fe.Value()),
			Err:   fmt.Errorf("failed %q check", fe.Tag()),
		}
	}
}

func comparison(tag string) string {
	if tag == "gte" {
		return "at least"
	}
	return "greater than"
}
