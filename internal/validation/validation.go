// Package validation binds and validates request payloads.
//
// Rules live in validator struct tags; failures are converted into
// errs.FieldError values the client can act on.
package validation
