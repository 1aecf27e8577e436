package validator

import (
	"fmt"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the custom rules used by
// the training service.
type Validator struct {
	validate *playground.Validate
}

// New creates a validator with all custom rules registered
func New() *Validator {
	validate := playground.New(playground.WithRequiredStructEnabled())

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// Validate validates any tagged struct
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return toValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerRules() {
	// course_category restricts to the catalog families sold by the center
	_ = v.validate.RegisterValidation("course_category", func(fl playground.FieldLevel) bool {
		switch fl.Field().String() {
		case "permis_b", "ssiap", "sst", "vtc", "taxi", "caces":
			return true
		}
		return false
	})

	// payment_method restricts to supported payment channels
	_ = v.validate.RegisterValidation("payment_method", func(fl playground.FieldLevel) bool {
		switch fl.Field().String() {
		case "stripe", "card", "cash", "transfer":
			return true
		}
		return false
	})
}

// ValidationError describes a single failed field
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors aggregates field failures for one request
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	parts := make([]string, len(e))
	for i, err := range e {
		parts[i] = err.Message
	}
	return strings.Join(parts, "; ")
}

// HasErrors reports whether any field failed
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

func toValidationErrors(err error) ValidationErrors {
	var out ValidationErrors

	fieldErrors, ok := err.(playground.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Tag: "", Message: err.Error()}}
	}

	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag()),
		})
	}
	return out
}
