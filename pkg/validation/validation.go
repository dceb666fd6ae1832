// Package validation wraps go-playground/validator so request DTOs report
// failures by their JSON field names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

type Errors []FieldError

func (errs Errors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(errs), strings.Join(parts, "; "))
}

// Details maps field name to message, for AppError details.
func (errs Errors) Details() map[string]any {
	out := make(map[string]any, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return out
}

// Validator checks values of one request type.
type Validator[T any] struct {
	validate *validator.Validate
}

func New[T any]() *Validator[T] {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &Validator[T]{validate: v}
}

// Validate returns Errors for rule violations, or the underlying error when
// the value could not be inspected at all.
func (v *Validator[T]) Validate(value *T) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "mongodb":
		return fe.Field() + " must be a valid MongoDB ObjectID"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	return fe.Error()
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// DetailsOf returns per-field details when err is Errors, otherwise the
// error text under "error".
func DetailsOf(err error) map[string]any {
	var errs Errors
	if errors.As(err, &errs) {
		return errs.Details()
	}
	return map[string]any{"error": err.Error()}
}
