package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/validator"
)

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"simple address", "user@example.com", true},
		{"subdomain", "user@mail.example.co.uk", true},
		{"plus tag", "user+tag@example.com", true},
		{"missing at", "invalid-email", false},
		{"missing domain dot", "user@localhost", false},
		{"empty local part", "@example.com", false},
		{"empty domain label", "user@example..com", false},
		{"leading dot domain", "user@.example.com", false},
		{"whitespace", " user@example.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.ValidEmail("email", tt.value))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"international", "+14155550123", true},
		{"formatted", "+1 (415) 555-0123", true},
		{"bare digits", "4155550123", true},
		{"minimum length", "1234567", true},
		{"too short", "123456", false},
		{"too long", "1234567890123456", false},
		{"letters", "call-me-maybe", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.ValidPhone("phone", tt.value))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+14155550123", validator.NormalizePhone("+1 (415) 555-0123"))
	assert.Equal(t, "1234567", validator.NormalizePhone("123.45 67"))
}

func TestStrongPassword(t *testing.T) {
	t.Parallel()

	t.Run("accepts strong password", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(validator.StrongPassword("password", "StrongP@ssw0rd1")))
	})

	t.Run("failure lists every missing class", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(validator.StrongPassword("password", "weak"))
		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 1)

		msg := verrs[0].Message
		assert.Contains(t, msg, "at least 8 characters")
		assert.Contains(t, msg, "uppercase")
		assert.Contains(t, msg, "digit")
		assert.Contains(t, msg, "special character")
		assert.NotContains(t, msg, "lowercase")
	})

	t.Run("never echoes the password", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(validator.StrongPassword("password", "hunter2"))
		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 1)
		assert.Empty(t, verrs[0].Input)
	})

	t.Run("rejects missing symbol", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, validator.Apply(validator.StrongPassword("password", "Abcdefg1")))
	})
}

func TestValidName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"simple", "John", true},
		{"apostrophe", "O'Brien", true},
		{"hyphenated", "Mary-Jane Watson", true},
		{"unicode letters", "José", true},
		{"digits", "John3", false},
		{"script tag", "<script>alert(1)</script>", false},
		{"empty", "", false},
		{"too long", strings.Repeat("a", 101), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.ValidName("name", tt.value))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPositiveID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"positive", "42", true},
		{"one", "1", true},
		{"zero", "0", false},
		{"negative", "-5", false},
		{"non numeric", "abc", false},
		{"decimal", "1.5", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.PositiveID("id", tt.value))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDateRules(t *testing.T) {
	t.Parallel()

	t.Run("date", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validator.Apply(validator.ValidDate("date", "2025-06-15")))
		assert.Error(t, validator.Apply(validator.ValidDate("date", "15/06/2025")))
		assert.Error(t, validator.Apply(validator.ValidDate("date", "2025-6-15")))
		assert.Error(t, validator.Apply(validator.ValidDate("date", "2025-13-01")))
		assert.Error(t, validator.Apply(validator.ValidDate("date", "2025-06")))
	})

	t.Run("datetime", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validator.Apply(validator.ValidDateTime("at", "2025-06-15T10:30:00Z")))
		assert.NoError(t, validator.Apply(validator.ValidDateTime("at", "2025-06-15T10:30:00+05:30")))
		assert.NoError(t, validator.Apply(validator.ValidDateTime("at", "2025-06-15T10:30:00")))
		assert.Error(t, validator.Apply(validator.ValidDateTime("at", "2025-06-15 10:30")))
		assert.Error(t, validator.Apply(validator.ValidDateTime("at", "June 15, 2025")))
	})
}

func TestSafeText(t *testing.T) {
	t.Parallel()

	t.Run("clean text passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(validator.SafeText("notes", "routine checkup requested", 5000)...))
	})

	t.Run("attack signature tagged as security error", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(validator.SafeText("notes", "' OR 1=1 --", 5000)...)
		verrs := validator.ExtractValidationErrors(err)
		require.NotEmpty(t, verrs)
		assert.True(t, verrs.HasSecurityErrors())
		assert.Equal(t, validator.TypeSecurityError, verrs[0].Type)
	})

	t.Run("over declared max", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.SafeText("notes", strings.Repeat("x", 101), 100)...)
		assert.Error(t, err)
	})

	t.Run("hard cap applies when max is zero", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.SafeText("notes", strings.Repeat("x", 10001), 0)...)
		assert.Error(t, err)
	})
}

func TestNumericRules(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.IntegerString("n", "10")))
	assert.Error(t, validator.Apply(validator.IntegerString("n", "10.5")))
	assert.NoError(t, validator.Apply(validator.DecimalString("n", "10.5")))
	assert.Error(t, validator.Apply(validator.DecimalString("n", "ten")))
	assert.NoError(t, validator.Apply(validator.NumericBounds("n", "5", 1, 10)))
	assert.Error(t, validator.Apply(validator.NumericBounds("n", "11", 1, 10)))
	assert.NoError(t, validator.Apply(validator.Min("n", 5, 1)))
	assert.Error(t, validator.Apply(validator.Max("n", 5, 4)))
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	allowed := []string{"pending", "confirmed", "completed"}
	assert.NoError(t, validator.Apply(validator.OneOf("status", "pending", allowed)))
	assert.Error(t, validator.Apply(validator.OneOf("status", "Pending", allowed)), "membership is case-sensitive")
	assert.Error(t, validator.Apply(validator.OneOf("status", "unknown", allowed)))
}

func TestFileRules(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.AllowedContentType("file", "application/pdf", validator.AllowedReportTypes)))
	assert.Error(t, validator.Apply(validator.AllowedContentType("file", "application/x-msdownload", validator.AllowedReportTypes)))

	assert.NoError(t, validator.Apply(validator.MaxFileSize("file", 1024, 0)))
	assert.Error(t, validator.Apply(validator.MaxFileSize("file", validator.DefaultMaxFileSize+1, 0)))
	assert.Error(t, validator.Apply(validator.MaxFileSize("file", 0, 0)))

	assert.NoError(t, validator.Apply(validator.SafeFilename("filename", "report.pdf")))
	assert.Error(t, validator.Apply(validator.SafeFilename("filename", "../secret.pdf")))
	assert.Error(t, validator.Apply(validator.SafeFilename("filename", "")))
}

func TestApply_AccumulatesAllFailures(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.ValidEmail("email", "not-an-email"),
		validator.ValidPhone("phone", "x"),
		validator.PositiveID("id", "-1"),
	)

	verrs := validator.ExtractValidationErrors(err)
	require.Len(t, verrs, 3)
	assert.Equal(t, []string{"email", "phone", "id"}, verrs.Fields())
	assert.True(t, validator.IsValidationError(err))
}

func TestValidationError_EchoIsTruncatedAndEscaped(t *testing.T) {
	t.Parallel()

	long := "<b>" + strings.Repeat("a", 200)
	err := validator.Apply(validator.ValidEmail("email", long))
	verrs := validator.ExtractValidationErrors(err)
	require.Len(t, verrs, 1)

	assert.NotContains(t, verrs[0].Input, "<")
	assert.LessOrEqual(t, len([]rune(verrs[0].Input)), 120, "escaped echo stays near the cap")
}
