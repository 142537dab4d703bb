package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means the requested recipe does not exist.
	ErrNotFound = errors.New("recipe not found")
	// ErrUnauthorized means the caller has no session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller has a session but does not own the recipe.
	// It wraps ErrUnauthorized.
	ErrForbidden = fmt.Errorf("%w: recipe belongs to another user", ErrUnauthorized)
	// ErrDuplicateUsername means registration hit an existing username.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials means login failed. It does not reveal whether
	// the username exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError lists the fields that failed validation, keyed by their
// form field name, with the failed rule as value.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s is %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct runs the struct's validate tags and converts failures into
// a *ValidationError.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = ruleDescription(e)
	}
	return &ValidationError{Fields: fields}
}

func ruleDescription(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "required"
	case "max":
		return "longer than " + e.Param()
	default:
		return "invalid (" + e.Tag() + ")"
	}
}
