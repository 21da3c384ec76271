package validator

import (
	"fmt"
	"strings"
)

// OneOf validates case-sensitive exact membership in the allowed set.
func OneOf(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			for _, a := range allowed {
				if value == a {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}
