package validator

import "testing"

type sample struct {
	Name  string `validate:"required"`
	Email string `validate:"omitempty,email"`
}

func TestFieldErrors(t *testing.T) {
	val := New()

	err := val.Struct(sample{Email: "not-an-email"})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	fields := FieldErrors(err)
	if fields["name"] != "required" {
		t.Fatalf("expected name=required, got %#v", fields)
	}
	if fields["email"] != "email" {
		t.Fatalf("expected email=email, got %#v", fields)
	}
}

func TestFieldErrorsNil(t *testing.T) {
	if FieldErrors(nil) != nil {
		t.Fatalf("expected nil map for nil error")
	}
}
