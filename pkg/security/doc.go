// Package security detects known attack signatures in untrusted input.
//
// The detector scans a string against a declarative table of
// (category, pattern) pairs covering script injection, SQL injection,
// path traversal and null-byte/control-character injection. Every match
// of every pattern is reported as a Finding; nothing short-circuits,
// so a caller always sees the full set of signatures present in the
// input.
//
// Scanning is pure and stateless: the pattern table is compiled once at
// package initialization and never mutated, so Scan is safe under
// unlimited concurrency.
//
//	findings := security.Scan(input)
//	if len(findings) > 0 {
//	    // reject the field; findings are terminal for non-rich-text fields
//	}
//
// The table is intentionally data-driven so new signatures are added as
// rows, not branches.
package security
