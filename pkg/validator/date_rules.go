package validator

import (
	"time"
)

// ISO 8601 layouts accepted by the date-time validator. Partial or
// ambiguous formats (missing seconds, slashes, month names) are not.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ValidDate validates an exact ISO 8601 calendar date (2006-01-02).
func ValidDate(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse("2006-01-02", value)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid ISO 8601 date (YYYY-MM-DD)",
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}

// ValidDateTime validates an exact ISO 8601 date-time, with or without a
// timezone offset ("Z" accepted).
func ValidDateTime(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, ok := ParseDateTime(value)
			return ok
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid ISO 8601 date-time",
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}

// ParseDateTime parses value against the accepted ISO 8601 layouts.
func ParseDateTime(value string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
