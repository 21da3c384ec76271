package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/sanitizer"
)

// Numeric covers every built-in numeric type usable with the generic
// bound rules.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Error type tags distinguishing ordinary value failures from security
// findings escalated through validation.
const (
	TypeValueError    = "value_error"
	TypeSecurityError = "security_error"
)

// maxInputEcho bounds how much of the offending input is echoed back in
// a ValidationError.
const maxInputEcho = 100

// ValidationError represents a single field validation failure. Input
// carries the offending value, truncated and HTML-escaped so it is safe
// to reflect in an error response.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Input   string `json:"input,omitempty"`
}

// ValidationErrors is an ordered collection of validation failures.
// Order follows rule-application order, which callers arrange to match
// field declaration order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Fields returns the distinct failing field names in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// HasSecurityErrors reports whether any failure carries the security tag.
func (ve ValidationErrors) HasSecurityErrors() bool {
	for _, err := range ve {
		if err.Type == TypeSecurityError {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule is a single validation rule: a predicate plus the error recorded
// when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes every rule and returns the accumulated failures, or nil
// when all rules pass. It never stops at the first failure.
func Apply(rules ...Rule) error {
	var errs ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if errs.IsEmpty() {
		return nil
	}

	return errs
}

// ExtractValidationErrors unwraps ValidationErrors from err, or returns
// nil when err carries none.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

// echo prepares an offending value for inclusion in a ValidationError:
// truncated to a fixed budget and entity-escaped.
func echo(value string) string {
	runes := []rune(value)
	if len(runes) > maxInputEcho {
		value = string(runes[:maxInputEcho])
	}
	return sanitizer.Escape(value)
}
