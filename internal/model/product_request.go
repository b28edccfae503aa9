package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/deppfellow/storefront/internal/validation"
)

// maxPrice is the largest value a NUMERIC(12,2) price column holds.
var maxPrice = decimal.RequireFromString("9999999999.99")

// CreateProductRequest is the body of POST /api/v1/products.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price"`
}

// Validate trims the name before checking it, so whitespace-only names are
// rejected as missing.
func (r *CreateProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)

	if err := validation.Struct(r); err != nil {
		return err
	}

	if r.Price.IsNegative() {
		return validation.CustomValidationErrors{
			{Field: "price", Message: "must not be negative"},
		}
	}
	if r.Price.GreaterThan(maxPrice) {
		return validation.CustomValidationErrors{
			{Field: "price", Message: "must not exceed " + maxPrice.StringFixed(2)},
		}
	}
	return nil
}
