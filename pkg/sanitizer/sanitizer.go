package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// allowedTags is the allow-list of harmless formatting tags that survive
// Sanitize. Attributes are never preserved, even on allowed tags.
var allowedTags = map[string]bool{
	"p": true, "br": true, "strong": true, "em": true, "u": true,
	"i": true, "b": true, "ul": true, "ol": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "code": true, "pre": true,
}

var (
	// Tags whose content is itself dangerous and must go with the tag.
	scriptBlockRegex = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</\s*(script|style)\s*>`)
	danglingScript   = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>`)
	tagRegex         = regexp.MustCompile(`<\s*(/?)\s*([a-zA-Z][a-zA-Z0-9]*)\b[^>]*>`)
)

// Sanitize performs allow-list HTML cleaning. Tags outside the safe set
// are stripped (their inner text is kept), script and style blocks are
// removed along with their content, and surviving tags are normalized to
// a bare lowercase form with no attributes.
//
// The result is a fixpoint: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(s string) string {
	s = removeUnsafeRunes(s)

	// Stripping can splice adjacent fragments into a new tag
	// (e.g. <scr<script>ipt>), so iterate until stable.
	for {
		next := sanitizeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func sanitizeOnce(s string) string {
	s = scriptBlockRegex.ReplaceAllString(s, "")
	s = danglingScript.ReplaceAllString(s, "")

	return tagRegex.ReplaceAllStringFunc(s, func(tag string) string {
		m := tagRegex.FindStringSubmatch(tag)
		name := strings.ToLower(m[2])
		if !allowedTags[name] {
			return ""
		}
		if m[1] == "/" {
			return "</" + name + ">"
		}
		return "<" + name + ">"
	})
}

// StripTags removes all HTML markup, keeping only text content.
// Like Sanitize, the result is a fixpoint.
func StripTags(s string) string {
	s = removeUnsafeRunes(s)
	for {
		next := scriptBlockRegex.ReplaceAllString(s, "")
		next = danglingScript.ReplaceAllString(next, "")
		next = tagRegex.ReplaceAllString(next, "")
		if next == s {
			return next
		}
		s = next
	}
}

// Escape entity-escapes <, >, &, " and ' for safe embedding in HTML.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Filename makes an untrusted filename safe: path separators and shell
// or filesystem metacharacters become underscores, traversal sequences
// and control characters are dropped, and the result is capped at 255
// bytes. An input that sanitizes to nothing becomes "file".
func Filename(name string) string {
	name = removeUnsafeRunes(name)
	name = strings.ReplaceAll(name, "..", "")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.Trim(b.String(), " .")
	if len(cleaned) > 255 {
		cleaned = cleaned[:255]
	}
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

// removeUnsafeRunes drops NUL and other C0 control characters that have
// no business in user input, keeping tab, LF and CR.
func removeUnsafeRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t') {
			return -1
		}
		return r
	}, s)
}
