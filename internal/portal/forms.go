package portal

import (
	"errors"
	"strings"
	"sync"

	"edu_portal/internal/client"

	"github.com/go-playground/validator/v10"
)

// SignupForm is what the signup screen collects
type SignupForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"eqfield=Password"`
	Role     string `validate:"required,oneof=student teacher"`
}

// LoginForm is what the login screen collects
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Role     string `validate:"required,oneof=student teacher"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

var fieldMessages = map[string]string{
	"Email.required":    "email is required",
	"Email.email":       "enter a valid email address",
	"Password.required": "password is required",
	"Password.min":      "password must be at least 8 characters",
	"Confirm.eqfield":   "passwords do not match",
	"Role.required":     "choose a role",
	"Role.oneof":        "role must be student or teacher",
}

// validateForm turns the first validator failure into a ValidationError
func validateForm(form any) error {
	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &client.ValidationError{Message: err.Error()}
	}
	fe := verrs[0]
	msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg = "is invalid"
	}
	return &client.ValidationError{Field: strings.ToLower(fe.Field()), Message: msg}
}
