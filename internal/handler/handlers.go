package handler

import (
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health  *HealthHandler
	Product *ProductHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Product: NewProductHandler(s, services.Product),
	}
}
