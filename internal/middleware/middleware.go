// Package middleware holds the global and route-specific Echo middleware:
// request ids, request-scoped logging, New Relic tracing, Clerk
// authentication, rate limiting and the global error handler.
package middleware
