package handlers

import (
	"luco/internal/validators"
)

// validationDetails flattens validator errors into the response envelope's
// details map.
func validationDetails(errs validators.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field] = err.Message
	}
	return details
}
