// Package handler is the HTTP layer behind the router.
//
// Handlers bind and validate input through the validation package, call the
// services and hand the result to a ResponseHandler. They never format
// errors themselves; that is the global error handler's job.
package handler
