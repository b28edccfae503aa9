package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/view"
)

// registerSystemRoutes registers routes outside the catalog: health and
// the embedded static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.StaticFS("/static", view.StaticFS())
}
