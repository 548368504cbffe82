package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// NewValidator registers the custom rules the API types rely on. The "future"
// rule rejects time fields that are not strictly after now.
func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("future", validateFuture)

	return validator
}

func validateFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}

	return t.After(time.Now())
}
