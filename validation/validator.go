// Package validation carries the request-input checks shared by API
// products: a fluent validator for handler-level checks and struct-tag
// validation for request bodies, both reporting through the unified error
// response.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/tenantify/apikit/errors"
)

// FieldError names one invalid field. It is carried in the error response
// details so clients can attach messages to form fields.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors across a chain of checks. Build one per
// request, chain the checks, and finish with Err.
type Validator struct {
	fields []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Fail records a field error directly.
func (v *Validator) Fail(field, message string) *Validator {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
	return v
}

// Require checks that a string has non-whitespace content.
func (v *Validator) Require(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.Fail(field, "is required")
	}
	return v
}

// tenantSlugPattern admits the DNS-label style identifiers products use for
// tenant subdomains: lowercase, digits, inner hyphens, 3 to 63 characters.
var tenantSlugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,61}[a-z0-9]$`)

// ValidTenantID reports whether value is an acceptable tenant identifier:
// either a UUID or a subdomain-safe slug.
func ValidTenantID(value string) bool {
	if _, err := uuid.Parse(value); err == nil {
		return true
	}
	return tenantSlugPattern.MatchString(value)
}

// TenantID checks that value is a well-formed tenant identifier. Empty is
// rejected; tenant scope is never optional.
func (v *Validator) TenantID(field, value string) *Validator {
	if value == "" {
		return v.Fail(field, "is required")
	}
	if !ValidTenantID(value) {
		return v.Fail(field, "must be a UUID or a lowercase tenant slug")
	}
	return v
}

// UUID checks that a non-empty value parses as a UUID. Pair with Require
// when the field is mandatory.
func (v *Validator) UUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		return v.Fail(field, "must be a valid UUID")
	}
	return v
}

// Length checks that a string's byte length lies in [min, max]. A max of
// zero means unbounded above.
func (v *Validator) Length(field, value string, min, max int) *Validator {
	if len(value) < min {
		return v.Fail(field, fmt.Sprintf("must be at least %d characters", min))
	}
	if max > 0 && len(value) > max {
		return v.Fail(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return v
}

// Bounds checks that an integer lies in [min, max].
func (v *Validator) Bounds(field string, value, min, max int) *Validator {
	if value < min || value > max {
		return v.Fail(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
	return v
}

// Match checks a non-empty value against a compiled pattern, reporting hint
// as the expected format.
func (v *Validator) Match(field, value string, pattern *regexp.Regexp, hint string) *Validator {
	if value != "" && !pattern.MatchString(value) {
		return v.Fail(field, "must be "+hint)
	}
	return v
}

// Enum checks that a non-empty value is one of the allowed literals.
func (v *Validator) Enum(field, value string, allowed ...string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	return v.Fail(field, "must be one of: "+strings.Join(allowed, ", "))
}

// When records a field error if failed is true, for checks the fixed rules
// do not cover.
func (v *Validator) When(failed bool, field, message string) *Validator {
	if failed {
		return v.Fail(field, message)
	}
	return v
}

// Fields returns the accumulated field errors.
func (v *Validator) Fields() []FieldError {
	return v.fields
}

// Err returns nil when every check passed, otherwise a validation AppError
// whose message lists each failed field and whose details carry the
// structured field errors.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return fieldsError(v.fields)
}

// ParseUUID validates and parses a UUID path or query parameter.
func ParseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, errors.Validation(field + " must be a valid UUID")
	}
	return id, nil
}

func fieldsError(fields []FieldError) *errors.AppError {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.Field + " " + f.Message
	}
	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": fields}
	return appErr
}
