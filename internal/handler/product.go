package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/view"
)

// ProductCatalog is the product service as the handlers see it.
type ProductCatalog interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, name, description string, price decimal.Decimal) (*model.Product, error)
}

type ProductHandler struct {
	Handler
	catalog ProductCatalog
}

func NewProductHandler(s *server.Server, catalog ProductCatalog) *ProductHandler {
	return &ProductHandler{
		Handler: NewHandler(s),
		catalog: catalog,
	}
}

// HomeRequest is the empty request of GET /. Nothing is read from the
// request.
type HomeRequest struct{}

func (r *HomeRequest) Validate() error {
	return nil
}

// Home lists every product in store order for the home page. Store errors
// are returned as-is.
func (h *ProductHandler) Home(c echo.Context, _ *HomeRequest) (view.HomePage, error) {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return view.HomePage{}, err
	}

	return view.HomePage{Products: products}, nil
}

func (h *ProductHandler) CreateProduct(c echo.Context, req *model.CreateProductRequest) (*model.Product, error) {
	return h.catalog.CreateProduct(c.Request().Context(), req.Name, req.Description, req.Price)
}
