package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/storefront/internal/server"
)

// TracingMiddleware owns the New Relic related Echo middleware.
//
// It needs:
//   - server: shared deps (logger/config)
//   - nrApp: the New Relic application instance (nil when APM is disabled)
//
// It provides two layers:
//  1. NewRelicMiddleware()  -> starts a New Relic transaction per request
//  2. EnhanceTracing()      -> adds storefront attributes and notices errors
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

// NewTracingMiddleware constructs TracingMiddleware.
func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware returns the New Relic Echo middleware.
//
// What it does:
//   - If nrApp is nil, it returns a pass-through middleware.
//   - Otherwise it returns nrecho.Middleware(tm.nrApp), which:
//   - starts a transaction for each request
//   - stores the transaction in the request context
//   - records timing and status codes
//
// newrelic.FromContext(...) in EnhanceTracing and in the handlers only
// finds a transaction when this middleware ran first.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		// Pass-through: return the next handler unwrapped.
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing adds custom attributes to the New Relic transaction.
//
// It must be installed after NewRelicMiddleware() so a transaction exists
// in the request context.
//
// What it adds:
//   - client IP and user agent
//   - request id (from the RequestID middleware)
//   - user id (set by the auth middleware on /api/v1/products)
//   - response status code
//
// Errors are recorded through nrpkgerrors.Wrap so traces keep stack info.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// nil when APM is disabled or NewRelicMiddleware was not
			// installed ahead of this one.
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			// NOTE: user agent strings can be long and high-cardinality.
			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())

			// Correlates traces with the request logs.
			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			err := next(c)

			// Auth runs per route group, inside this middleware, so the user
			// id is only known once the chain has returned.
			if userID := GetUserID(c); userID != "" {
				txn.AddAttribute("user.id", userID)
			}

			// NoticeError only records the error. It is still returned so the
			// global error handler writes the response.
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}

			// Status is only final after the handler ran.
			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}
