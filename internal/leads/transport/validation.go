package transport

import (
	"lead_qualification_backend/internal/leads/qualification"
	"lead_qualification_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// TagLeadSource accepts an empty value or one of the known lead sources.
const TagLeadSource = "leadsource"

// RegisterValidations installs the lead-specific validation rules.
func RegisterValidations(val *validator.Validator) error {
	return val.RegisterValidation(TagLeadSource, func(fl playground.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}
		return qualification.ParseSource(raw).IsKnown()
	})
}
