package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ParseError flattens a binding error into a per-field message map suitable for a
// 400 response body. Errors that did not come from struct validation are
// reported under a single "error" key.
func ParseError(err error) map[string]string {
	fields := make(map[string]string)

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}
		return fields
	}

	if err != nil {
		fields["error"] = err.Error()
	}
	return fields
}
