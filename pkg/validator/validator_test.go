package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type signupForm struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(signupForm{Email: "not-an-email", Password: "abc"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := FormatValidationError(err)
	for _, want := range []string{
		"fullname is required",
		"email must be a valid email",
		"password must be at least 6 characters",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}
}

func TestFormatValidationErrorHidesDecoderErrors(t *testing.T) {
	if got := FormatValidationError(errors.New("invalid character '}' looking for beginning of value")); got != "invalid request body" {
		t.Fatalf("FormatValidationError() = %q", got)
	}
}
