// Package sanitizer cleans user-supplied text that is explicitly allowed
// to carry markup, and escapes text that is not.
//
// Sanitize performs allow-list HTML cleaning: a small set of harmless
// formatting tags survives (attributes are always dropped), everything
// else is stripped while its inner text is kept. StripTags removes all
// markup for plain-text fields, and Escape entity-escapes the usual
// HTML metacharacters.
//
// All functions are idempotent — sanitizing already-sanitized input is a
// no-op — and stateless, so they are safe under unlimited concurrency.
//
// Sanitization is an opt-in path for genuinely free-text fields (report
// notes, descriptions). Security-critical fields are never cleaned; they
// are rejected outright when the pattern detector flags them.
package sanitizer
