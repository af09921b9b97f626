package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/phrase-sort-service/internal/exercise"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator with the custom tags used by the
// session API.
type Validator struct {
	structValidator *validator.Validate
}

func New() *Validator {
	structValidator := validator.New()

	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags only and returns the raw validator error.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates s and reports failures as ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	err := v.ValidateStruct(s)
	if err == nil {
		return nil
	}
	if errs := ToValidationErrors(err); len(errs) > 0 {
		return errs
	}
	return err
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("action_kind", validateActionKind)

	// Report json names so errors match the wire payload
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateActionKind(fl validator.FieldLevel) bool {
	return exercise.IsKnownKind(fl.Field().String())
}
