package security

import (
	"regexp"
	"unicode/utf8"
)

// Category identifies the class of attack signature a pattern belongs to.
type Category string

const (
	CategoryScriptTag      Category = "script_tag"
	CategoryEventHandler   Category = "event_handler"
	CategoryJSProtocol     Category = "javascript_protocol"
	CategorySQLOrCondition Category = "sql_or_condition"
	CategorySQLUnion       Category = "sql_union"
	CategorySQLDestructive Category = "sql_destructive"
	CategorySQLComment     Category = "sql_comment"
	CategoryPathTraversal  Category = "path_traversal"
	CategoryNullByte       Category = "null_byte"
	CategoryControlChar    Category = "control_char"
)

// Finding is a single detected occurrence of an attack signature.
// Match holds the offending substring, truncated for safe echoing.
type Finding struct {
	Category Category
	Match    string
}

// maxMatchEcho bounds how much of the matched input is carried in a
// Finding so hostile payloads are never reflected at full length.
const maxMatchEcho = 100

type pattern struct {
	category Category
	re       *regexp.Regexp
}

// patterns is the signature table. Matching is case-insensitive and every
// pattern is evaluated independently on every scan.
var patterns = []pattern{
	{CategoryScriptTag, regexp.MustCompile(`(?i)</?script\b[^>]*>?`)},
	{CategoryEventHandler, regexp.MustCompile(`(?i)\bon\w+\s*=`)},
	{CategoryJSProtocol, regexp.MustCompile(`(?i)javascript\s*:`)},
	{CategorySQLOrCondition, regexp.MustCompile(`(?i)['"\x60]\s*(or|and)\s+(\d+\s*=\s*\d+|['"\x60]?\w+['"\x60]?\s*=\s*['"\x60]?\w+['"\x60]?)`)},
	{CategorySQLUnion, regexp.MustCompile(`(?i)\bunion\s+(all\s+)?select\b`)},
	{CategorySQLDestructive, regexp.MustCompile(`(?i)\b(drop\s+table|delete\s+from|truncate(\s+table)?)\b`)},
	{CategorySQLComment, regexp.MustCompile(`--|/\*`)},
	{CategoryPathTraversal, regexp.MustCompile(`(?i)\.\./|\.\.\\|%2e%2e%2f|%2e%2e/|\.\.%2f`)},
	{CategoryNullByte, regexp.MustCompile(`\x00|%00`)},
	// C0 controls except NUL (reported separately), tab, LF and CR.
	{CategoryControlChar, regexp.MustCompile(`[\x01-\x08\x0b\x0c\x0e-\x1f]`)},
}

// Scan reports every attack signature present in s. The result is nil when
// the input is clean. Findings appear in table order; multiple matches of
// the same pattern are all reported.
func Scan(s string) []Finding {
	if s == "" {
		return nil
	}

	var findings []Finding
	for _, p := range patterns {
		for _, match := range p.re.FindAllString(s, -1) {
			findings = append(findings, Finding{
				Category: p.category,
				Match:    truncate(match, maxMatchEcho),
			})
		}
	}
	return findings
}

// Detected reports whether s contains at least one attack signature.
// Cheaper than Scan when the caller only needs a verdict.
func Detected(s string) bool {
	for _, p := range patterns {
		if p.re.MatchString(s) {
			return true
		}
	}
	return false
}

// Categories returns the distinct categories present in findings,
// preserving first-seen order.
func Categories(findings []Finding) []Category {
	var out []Category
	seen := make(map[Category]struct{}, len(findings))
	for _, f := range findings {
		if _, ok := seen[f.Category]; !ok {
			seen[f.Category] = struct{}{}
			out = append(out, f.Category)
		}
	}
	return out
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	// Do not split a multi-byte rune at the boundary.
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
