package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/security"
)

// hardTextCap is the absolute input length bound applied regardless of a
// rule's declared maximum, guarding against pathological payloads.
const hardTextCap = 10000

var nameRegex = regexp.MustCompile(`^[\p{L}][\p{L} '\-]*$`)

// Required validates that a string is non-empty after trimming.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "is required",
			Type:    TypeValueError,
		},
	}
}

// MinLen validates a minimum length in runes.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}

// MaxLen validates a maximum length in runes.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}

// NoAttackPatterns rejects input the pattern detector flags. The failure
// carries the security tag so callers escalate it to a terminal security
// failure.
func NoAttackPatterns(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return !security.Detected(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "contains potentially malicious content",
			Type:    TypeSecurityError,
			Input:   echo(value),
		},
	}
}

// ValidName validates a person or entity name: letters, spaces, hyphens
// and apostrophes, 1-100 characters. Attack signatures are checked by
// NoAttackPatterns separately; the character allow-list here rejects
// them as a side effect anyway.
func ValidName(field, value string) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			if n < 1 || n > 100 {
				return false
			}
			return nameRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must contain only letters, spaces, hyphens and apostrophes (1-100 characters)",
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}

// SafeText validates free text content: pattern detection first, then a
// declared maximum length, with an absolute cap as backstop. Returns the
// rules in the order they must apply.
func SafeText(field, value string, maxLength int) []Rule {
	if maxLength <= 0 || maxLength > hardTextCap {
		maxLength = hardTextCap
	}
	return []Rule{
		NoAttackPatterns(field, value),
		MaxLen(field, value, maxLength),
	}
}
