// Package router builds the Echo instance: renderer, error handler,
// middleware chain and routes.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/view"
)

// NewRouter wires the middleware in order: CORS, secure headers, request
// id, New Relic, tracing attributes, request-scoped logger, request
// logging, panic recovery, rate limit. The limiter runs last so rejected
// requests are still logged and traced.
func NewRouter(s *server.Server, h *handler.Handlers) (*echo.Echo, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Renderer = renderer
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	router.GET("/", handler.HandleHTML(
		h.Product.Handler,
		h.Product.Home,
		http.StatusOK,
		&handler.HomeRequest{},
		view.TemplateHome,
	))

	v1 := router.Group("/api/v1")
	products := v1.Group("/products", middlewares.Auth.RequireAuth)
	products.POST("", handler.Handle(
		h.Product.Handler,
		h.Product.CreateProduct,
		http.StatusCreated,
		&model.CreateProductRequest{},
	))

	return router, nil
}
