package handler

import (
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/validation"
)

// Handler holds the shared application dependencies. Concrete handlers
// embed it.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives the bound, validated request
// and returns the response value. Req is a pointer to a struct.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler writes a successful result and describes it for logs and
// traces.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes result as JSON.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {}

// HTMLResponseHandler renders result with the named template through the
// echo Renderer.
type HTMLResponseHandler struct {
	status   int
	template string
}

func (h HTMLResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.Render(h.status, h.template, result)
}

func (h HTMLResponseHandler) GetOperation() string {
	return "handler_html"
}

func (h HTMLResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn != nil {
		txn.AddAttribute("template.name", h.template)
	}
}

// newRequest allocates a fresh request value shaped like prototype, so
// concurrent requests never bind into the same struct.
func newRequest[Req validation.Validatable](prototype Req) Req {
	t := reflect.TypeOf(prototype)
	if t.Kind() != reflect.Ptr {
		return prototype
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// RequestValidator prepares req before the handler runs.
type RequestValidator func(c echo.Context, req validation.Validatable) error

// bindAndValidate fills req from the request, then validates it.
func bindAndValidate(c echo.Context, req validation.Validatable) error {
	return validation.BindAndValidate(c, req)
}

// validateOnly ignores the request body, query and Content-Type and only
// runs req's rules on its zero value.
func validateOnly(_ echo.Context, req validation.Validatable) error {
	return validation.Validate(req)
}

// handleRequest is the pipeline every route goes through: validate (and
// optionally bind), run the handler, write the response. It logs each phase with the request
// logger and records durations and errors on the New Relic transaction.
// Errors are returned unchanged for the global error handler.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	validate RequestValidator,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", c.Request().Method).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed JSON endpoint:
//
//	api.POST("/products", handler.Handle(h.Handler, h.CreateProduct, http.StatusCreated, &model.CreateProductRequest{}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), bindAndValidate, func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleHTML wraps a typed page endpoint whose result is rendered with
// template. Pages take no input: the request is never bound, so a stray body
// or Content-Type cannot fail the render.
func HandleHTML[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
	template string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), validateOnly, func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, HTMLResponseHandler{status: status, template: template})
	}
}
