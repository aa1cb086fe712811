package validation

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/tenantify/apikit/errors"
)

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T", err)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected field errors in details, got %v", appErr.Details)
	}
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidatorPassThrough(t *testing.T) {
	err := New().
		Require("title", "hello").
		TenantID("tenant_id", "acme-corp").
		UUID("parent_id", uuid.New().String()).
		Length("title", "hello", 1, 10).
		Bounds("page_size", 25, 1, 100).
		Enum("visibility", "private", "private", "shared").
		Err()
	if err != nil {
		t.Fatalf("expected all checks to pass, got %v", err)
	}
}

func TestValidatorCollectsEveryFailure(t *testing.T) {
	err := New().
		Require("title", "  ").
		TenantID("tenant_id", "Not A Tenant!").
		UUID("parent_id", "nope").
		Err()
	if err == nil {
		t.Fatal("expected a validation error")
	}

	fields := fieldMessages(t, err)
	if len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(fields), fields)
	}
	if fields["title"] != "is required" {
		t.Errorf("unexpected title message: %q", fields["title"])
	}
	if !strings.Contains(fields["tenant_id"], "tenant slug") {
		t.Errorf("unexpected tenant_id message: %q", fields["tenant_id"])
	}
}

func TestTenantIDForms(t *testing.T) {
	valid := []string{uuid.New().String(), "acme", "acme-corp-7", "a1b"}
	for _, id := range valid {
		if !ValidTenantID(id) {
			t.Errorf("%q should be a valid tenant id", id)
		}
	}

	invalid := []string{"", "ab", "-acme", "acme-", "Acme", "acme corp",
		strings.Repeat("a", 64)}
	for _, id := range invalid {
		if ValidTenantID(id) {
			t.Errorf("%q should not be a valid tenant id", id)
		}
	}
}

func TestValidatorLengthAndBounds(t *testing.T) {
	if err := New().Length("body", "abc", 5, 0).Err(); err == nil {
		t.Error("expected error below min length")
	}
	if err := New().Length("body", "abcdef", 0, 5).Err(); err == nil {
		t.Error("expected error above max length")
	}
	if err := New().Length("body", "abcdef", 0, 0).Err(); err != nil {
		t.Errorf("max of zero must be unbounded, got %v", err)
	}
	if err := New().Bounds("page", 0, 1, 50).Err(); err == nil {
		t.Error("expected error below bounds")
	}
}

func TestValidatorMatchAndEnum(t *testing.T) {
	slug := regexp.MustCompile(`^[a-z-]+$`)
	if err := New().Match("code", "ok-code", slug, "a lowercase slug").Err(); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	err := New().Match("code", "NOPE", slug, "a lowercase slug").Err()
	if err == nil || !strings.Contains(err.Error(), "lowercase slug") {
		t.Errorf("expected hint in message, got %v", err)
	}

	// Empty values skip Match and Enum; pair with Require when mandatory.
	if err := New().Match("code", "", slug, "a lowercase slug").Enum("kind", "").Err(); err != nil {
		t.Errorf("expected empty values to be skipped, got %v", err)
	}
	if err := New().Enum("kind", "other", "note", "task").Err(); err == nil {
		t.Error("expected enum rejection")
	}
}

func TestValidatorWhen(t *testing.T) {
	err := New().When(true, "range", "start must precede end").Err()
	if err == nil || !strings.Contains(err.Error(), "start must precede end") {
		t.Errorf("expected custom failure, got %v", err)
	}
	if err := New().When(false, "range", "unused").Err(); err != nil {
		t.Errorf("expected pass, got %v", err)
	}
}

func TestParseUUID(t *testing.T) {
	want := uuid.New()
	got, err := ParseUUID("note_id", " "+want.String()+" ")
	if err != nil {
		t.Fatalf("ParseUUID: %v", err)
	}
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	if _, err := ParseUUID("note_id", "not-a-uuid"); err == nil {
		t.Error("expected error for malformed UUID")
	}
}

func TestStructValidate(t *testing.T) {
	type createNote struct {
		TenantID string `json:"tenant_id" validate:"required,tenant_id"`
		Title    string `json:"title" validate:"required,max=10"`
		Contact  string `json:"contact" validate:"omitempty,email"`
	}

	if err := Validate(createNote{TenantID: "acme", Title: "hi"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	err := Validate(createNote{TenantID: "Not Valid", Title: "", Contact: "nope"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fields := fieldMessages(t, err)
	if fields["title"] != "is required" {
		t.Errorf("unexpected title message: %q", fields["title"])
	}
	if !strings.Contains(fields["tenant_id"], "tenant slug") {
		t.Errorf("unexpected tenant_id message: %q", fields["tenant_id"])
	}
	if !strings.Contains(fields["contact"], "email") {
		t.Errorf("unexpected contact message: %q", fields["contact"])
	}
}

func TestStructValidateUsesJSONNames(t *testing.T) {
	type input struct {
		DisplayName string `json:"display_name" validate:"required"`
		NoTag       string `validate:"required"`
	}

	err := Validate(input{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fields := fieldMessages(t, err)
	if _, ok := fields["display_name"]; !ok {
		t.Errorf("expected json tag name in field errors: %v", fields)
	}
	if _, ok := fields["no_tag"]; !ok {
		t.Errorf("expected snake_case fallback for untagged field: %v", fields)
	}
}
