package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrValidation wraps field-level validation failures on untrusted input.
var ErrValidation = errors.New("validation failed")

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterInput carries the untrusted registration form fields.
type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Username string `validate:"required,min=3,max=32"`
	Name     string `validate:"required,max=100"`
	Age      int    `validate:"gte=0,lte=150"`
}

func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			return fmt.Errorf("%w: field %s failed on %q", ErrValidation, field.Field(), field.Tag())
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
