package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	// E.164-ish: optional +, 7-15 digits, no leading zero on the country code.
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

	phoneStripRegex = regexp.MustCompile(`[\s\-().]`)
)

// ValidEmail validates an email address against a practical RFC 5322
// subset: parseable address, single @, dotted domain with no empty
// labels, no surrounding whitespace.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) != value || value == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			local, domain, ok := strings.Cut(value, "@")
			if !ok || local == "" {
				return false
			}

			if !strings.Contains(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}

			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}

// NormalizePhone strips spaces, dashes, parentheses and dots from a phone
// number, leaving digits and an optional leading plus sign.
func NormalizePhone(value string) string {
	return phoneStripRegex.ReplaceAllString(value, "")
}

// ValidPhone validates a phone number after normalization: optional
// leading + and country code, 7 to 15 digits total.
func ValidPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return phoneRegex.MatchString(NormalizePhone(value))
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid phone number (7-15 digits, optional leading +)",
			Type:    TypeValueError,
			Input:   echo(value),
		},
	}
}
