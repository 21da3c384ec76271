// Package validator provides composable field validation with error
// accumulation.
//
// Validation is expressed as Rule values — a predicate plus the
// ValidationError to record when the predicate fails. Apply runs every
// rule and collects every failure, so a request reports all of its field
// problems in a single response instead of stopping at the first one:
//
//	err := validator.Apply(
//	    validator.ValidEmail("email", email),
//	    validator.StrongPassword("password", password),
//	    validator.ValidName("first_name", firstName),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // render all failures at once
//	}
//
// Rules are pure and allocate no shared state; they are safe to build
// and apply concurrently.
//
// Security-sensitive rules (ValidName, SafeText) consult
// pkg/security before any shape checks and tag their failures with
// TypeSecurityError so the caller can escalate them to a terminal
// security failure rather than an ordinary validation error.
package validator
