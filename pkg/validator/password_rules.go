package validator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)
	symbolRegex    = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?~` + "`" + `]`)
)

// PasswordConfig controls the StrongPassword policy.
type PasswordConfig struct {
	MinLength int
	MaxLength int
}

// DefaultPasswordConfig returns the standard policy: 8-128 characters
// with at least one uppercase, lowercase, digit and symbol.
func DefaultPasswordConfig() PasswordConfig {
	return PasswordConfig{MinLength: 8, MaxLength: 128}
}

// StrongPassword validates password strength. The failure message names
// every missing requirement, not just the first.
func StrongPassword(field, value string) Rule {
	return StrongPasswordWith(field, value, DefaultPasswordConfig())
}

// StrongPasswordWith is StrongPassword with an explicit policy.
func StrongPasswordWith(field, value string, cfg PasswordConfig) Rule {
	problems := passwordProblems(value, cfg)

	message := "does not meet password requirements"
	if len(problems) > 0 {
		message = strings.Join(problems, "; ")
	}

	return Rule{
		Check: func() bool {
			return len(problems) == 0
		},
		Error: ValidationError{
			Field:   field,
			Message: message,
			Type:    TypeValueError,
			// Never echo passwords back.
		},
	}
}

func passwordProblems(value string, cfg PasswordConfig) []string {
	var problems []string

	if len(value) < cfg.MinLength {
		problems = append(problems, fmt.Sprintf("must be at least %d characters long", cfg.MinLength))
	}
	if cfg.MaxLength > 0 && len(value) > cfg.MaxLength {
		problems = append(problems, fmt.Sprintf("must be at most %d characters long", cfg.MaxLength))
	}
	if !uppercaseRegex.MatchString(value) {
		problems = append(problems, "must contain at least one uppercase letter")
	}
	if !lowercaseRegex.MatchString(value) {
		problems = append(problems, "must contain at least one lowercase letter")
	}
	if !digitRegex.MatchString(value) {
		problems = append(problems, "must contain at least one digit")
	}
	if !symbolRegex.MatchString(value) {
		problems = append(problems, "must contain at least one special character")
	}

	return problems
}
