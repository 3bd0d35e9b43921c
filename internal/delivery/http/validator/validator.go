// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	"regexp"

	domainerrors "coursehub/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// Login identifiers are bare digit strings with an optional leading plus.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// CustomValidator wraps the validator instance for Echo.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds the validator with the project's custom rules registered.
func New() *CustomValidator {
	v := validator.New()

	// "phone" validates the platform's phone format.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &CustomValidator{validate: v}
}

// Validate implements echo.Validator. Failures map onto the validation
// error of the domain taxonomy so the error handler renders a 400.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
