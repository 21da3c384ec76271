package guard

import (
	"math"

	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/sanitizer"
	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/security"
	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/validator"
)

// FieldKind selects the validation profile applied to a field's value.
type FieldKind int

const (
	// FieldText is free text: attack-pattern detection plus length bounds.
	FieldText FieldKind = iota
	FieldEmail
	FieldPhone
	FieldPassword
	FieldName
	FieldID
	FieldDate
	FieldDateTime
	FieldNumeric
	FieldEnum
)

// Field declares how one named input is validated. The zero value is a
// non-required free-text field.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool

	// MinLen and MaxLen bound text length in runes; zero means unset.
	MinLen int
	MaxLen int

	// Min and Max bound numeric values; nil means unbounded.
	Min *float64
	Max *float64

	// Integer restricts FieldNumeric to whole numbers.
	Integer bool

	// Enum lists the accepted values for FieldEnum.
	Enum []string

	// RichText opts the field into sanitize-instead-of-reject: markup is
	// reduced to the safe allow-list and detector findings do not fail
	// the request.
	RichText bool
}

// Schema is an ordered field list; validation errors follow declaration
// order so responses are stable.
type Schema struct {
	Fields []Field
}

// Validate checks values against the schema. It returns the cleaned
// values (rich-text fields sanitized, everything else verbatim), every
// accumulated validation failure, and the detector findings from
// non-rich fields. Findings mean the request must be rejected as
// malicious rather than merely invalid.
func (s Schema) Validate(values map[string]string) (map[string]string, validator.ValidationErrors, []security.Finding) {
	clean := make(map[string]string, len(values))
	var verrs validator.ValidationErrors
	var findings []security.Finding

	for _, f := range s.Fields {
		value, ok := values[f.Name]
		if !ok || value == "" {
			if f.Required {
				if err := validator.Apply(validator.Required(f.Name, value)); err != nil {
					verrs = append(verrs, validator.ExtractValidationErrors(err)...)
				}
			}
			continue
		}

		if f.RichText {
			clean[f.Name] = sanitizer.Sanitize(value)
			continue
		}

		if found := security.Scan(value); len(found) > 0 {
			findings = append(findings, found...)
			verrs.Add(validator.ValidationError{
				Field:   f.Name,
				Message: "Input contains potentially malicious content",
				Type:    validator.TypeSecurityError,
			})
			continue
		}

		if err := validator.Apply(f.rules(value)...); err != nil {
			verrs = append(verrs, validator.ExtractValidationErrors(err)...)
			continue
		}
		clean[f.Name] = value
	}

	return clean, verrs, findings
}

// rules builds the kind-specific rule list for a present, detector-clean
// value.
func (f Field) rules(value string) []validator.Rule {
	var rules []validator.Rule

	if f.MinLen > 0 {
		rules = append(rules, validator.MinLen(f.Name, value, f.MinLen))
	}
	if f.MaxLen > 0 {
		rules = append(rules, validator.MaxLen(f.Name, value, f.MaxLen))
	}

	switch f.Kind {
	case FieldEmail:
		rules = append(rules, validator.ValidEmail(f.Name, value))
	case FieldPhone:
		rules = append(rules, validator.ValidPhone(f.Name, value))
	case FieldPassword:
		rules = append(rules, validator.StrongPassword(f.Name, value))
	case FieldName:
		rules = append(rules, validator.ValidName(f.Name, value))
	case FieldID:
		rules = append(rules, validator.PositiveID(f.Name, value))
	case FieldDate:
		rules = append(rules, validator.ValidDate(f.Name, value))
	case FieldDateTime:
		rules = append(rules, validator.ValidDateTime(f.Name, value))
	case FieldNumeric:
		if f.Integer {
			rules = append(rules, validator.IntegerString(f.Name, value))
		} else {
			rules = append(rules, validator.DecimalString(f.Name, value))
		}
		if f.Min != nil || f.Max != nil {
			rules = append(rules, validator.NumericBounds(f.Name, value, bound(f.Min, math.Inf(-1)), bound(f.Max, math.Inf(1))))
		}
	case FieldEnum:
		rules = append(rules, validator.OneOf(f.Name, value, f.Enum))
	case FieldText:
		// Length bounds above are the whole profile; the detector already
		// ran.
	}

	return rules
}

func bound(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
