package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/skillforge/backend/pkg/util"
)

// Validator wraps struct-tag validation and converts failures into the
// service error taxonomy.
type Validator struct {
	validate *validator.Validate
}

// New builds a validator instance.
func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Struct validates tagged fields and reports all failures as a single
// validation error with per-field details.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return util.NewValidationError("invalid input", nil)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fmt.Sprintf("failed on %q", fe.Tag())
	}
	return util.NewValidationError("invalid input", details)
}
