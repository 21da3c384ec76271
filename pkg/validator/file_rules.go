package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/sanitizer"
)

// DefaultMaxFileSize is the upload size cap applied when a rule does not
// declare its own.
const DefaultMaxFileSize = 10 << 20 // 10 MiB

// Content type sets for upload validation.
var (
	AllowedImageTypes    = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	AllowedDocumentTypes = []string{"application/pdf", "text/plain"}
	AllowedReportTypes   = slices.Concat(AllowedImageTypes, AllowedDocumentTypes)
)

// AllowedContentType validates an upload's declared content type against
// an allowed set.
func AllowedContentType(field, contentType string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowed, contentType)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("file type %s is not allowed (allowed: %s)", contentType, strings.Join(allowed, ", ")),
			Type:    TypeValueError,
			Input:   echo(contentType),
		},
	}
}

// MaxFileSize validates an upload's size in bytes. A non-positive max
// falls back to DefaultMaxFileSize.
func MaxFileSize(field string, size, max int64) Rule {
	if max <= 0 {
		max = DefaultMaxFileSize
	}
	return Rule{
		Check: func() bool {
			return size > 0 && size <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("file size exceeds the maximum of %d bytes", max),
			Type:    TypeValueError,
		},
	}
}

// SafeFilename validates that a filename is non-empty and survives
// sanitization unchanged, meaning it carries no path components,
// traversal sequences or dangerous characters.
func SafeFilename(field, name string) Rule {
	return Rule{
		Check: func() bool {
			return name != "" && sanitizer.Filename(name) == name
		},
		Error: ValidationError{
			Field:   field,
			Message: "is not a safe filename",
			Type:    TypeValueError,
			Input:   echo(name),
		},
	}
}
