// Package errs defines the error types returned to HTTP clients.
//
// Every error that reaches the global error handler is converted into an
// HTTPError so clients always receive the same JSON shape, optionally with
// field-level validation errors and an action hint.
package errs
