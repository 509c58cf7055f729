// Package validators configures the request and record validator: json field
// names in error paths plus the station enumeration tags.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ev-charging/api/internal/models"
	appErr "github.com/ev-charging/api/pkg/errors"
)

var std = New()

// New returns a validator that reports json field names and understands the
// connector_type and station_status tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("connector_type", func(fl validator.FieldLevel) bool {
		return models.ConnectorType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("station_status", func(fl validator.FieldLevel) bool {
		return models.StationStatus(fl.Field().String()).Valid()
	})
	return v
}

// Struct validates s with the shared validator.
func Struct(s any) error {
	return Check(std, s)
}

// Check validates s with v and converts failures into an invalid AppError
// listing every rejected field.
func Check(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErr.Wrap(err, appErr.CodeInternal, "validation failed to run")
	}
	return appErr.Invalid(FieldErrors(verrs)...)
}

// FieldErrors converts validator errors into client-facing field errors.
func FieldErrors(verrs validator.ValidationErrors) []appErr.FieldError {
	out := make([]appErr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		e := appErr.FieldError{Field: field, Message: message(fe)}
		if !strings.Contains(strings.ToLower(field), "password") {
			e.Value = fe.Value()
		}
		out = append(out, e)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return "must not be empty"
			}
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "connector_type":
		return "must be one of " + join(models.ConnectorTypes)
	case "station_status":
		return "must be one of " + join(models.StationStatuses)
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func join[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
