package validator

import (
	"fmt"
	"strconv"
	"strings"
)

// PositiveID validates that a string parses as a positive integer
// identifier. Zero, negatives and non-numeric input are rejected.
func PositiveID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			return err == nil && id > 0
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a positive integer",
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}

// IntegerString validates that a string parses as an integer.
func IntegerString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be an integer",
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}

// DecimalString validates that a string parses as a decimal number.
func DecimalString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a number",
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}

// NumericBounds validates that a parsed numeric string lies within
// [min, max]. Parsing failures are reported by IntegerString or
// DecimalString; here an unparseable value simply fails the bound.
func NumericBounds(field, value string, min, max float64) Rule {
	return Rule{
		Check: func() bool {
			n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			return err == nil && n >= min && n <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}

// Min validates a generic numeric lower bound.
func Min[T Numeric](field string, value, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %v", min),
			Type:    TypeValueError,
		},
	}
}

// Max validates a generic numeric upper bound.
func Max[T Numeric](field string, value, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %v", max),
			Type:    TypeValueError,
		},
	}
}
