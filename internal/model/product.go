// Package model holds the domain entities shared by the repository,
// service, handler and view layers.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry listed on the storefront home page.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
