package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/storefront/internal/model"
)

// Querier is the subset of pgxpool.Pool the repositories use. pgx.Tx
// satisfies it too.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const productColumns = `id, name, description, price, created_at, updated_at`

// ProductRepository is the record store for products.
type ProductRepository struct {
	db Querier
}

func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProducts returns every product in insertion order. An empty table
// yields an empty, non-nil slice.
func (r *ProductRepository) GetProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Product])
	if err != nil {
		return nil, fmt.Errorf("failed to collect products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// CreateProduct inserts a product and returns the stored row.
func (r *ProductRepository) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal) (*model.Product, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO products (name, description, price)
		VALUES ($1, $2, $3)
		RETURNING `+productColumns,
		name, description, price,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	product, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Product])
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return product, nil
}
