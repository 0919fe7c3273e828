package server

import "github.com/go-playground/validator/v10"

// requestValidator adapts go-playground/validator to echo.Validator.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks the struct tags of i.
func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
