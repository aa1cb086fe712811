package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	structValidator *validator.Validate
	structOnce      sync.Once
)

// getStructValidator builds the process-wide validator/v10 instance: json
// tag names in messages and the tenant_id rule registered for request
// bodies that carry a tenant identifier.
func getStructValidator() *validator.Validate {
	structOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())

		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return snakeCase(fld.Name)
			}
			return name
		})

		// Usage: `validate:"required,tenant_id"`.
		_ = structValidator.RegisterValidation("tenant_id", func(fl validator.FieldLevel) bool {
			return ValidTenantID(fl.Field().String())
		})
	})
	return structValidator
}

// Validate checks a request body against its `validate` struct tags and
// returns a validation AppError naming every failed field.
func Validate(s any) error {
	err := getStructValidator().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-struct input or a bad tag is a programming error, not client
		// input; surface it unchanged.
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, FieldError{
			Field:   snakeCase(e.Field()),
			Message: tagMessage(e),
		})
	}
	return fieldsError(fields)
}

var tagMessages = map[string]string{
	"required":  "is required",
	"email":     "must be a valid email address",
	"url":       "must be a valid URL",
	"uuid":      "must be a valid UUID",
	"tenant_id": "must be a UUID or a lowercase tenant slug",
}

func tagMessage(e validator.FieldError) string {
	if msg, ok := tagMessages[e.Tag()]; ok {
		return msg
	}
	switch e.Tag() {
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "oneof":
		return "must be one of: " + e.Param()
	}
	return "is invalid"
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
