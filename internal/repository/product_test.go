package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/sqlerr"
)

// testPool connects to STOREFRONT_TEST_DATABASE_URL, migrates it and empties
// the products table. Tests are skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("STOREFRONT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	if err := database.MigrateDSN(ctx, &logger, dsn); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `TRUNCATE products RESTART IDENTITY`); err != nil {
		t.Fatalf("failed to truncate products: %v", err)
	}

	return pool
}

func TestProductRepository_GetProducts_Empty(t *testing.T) {
	repo := NewProductRepository(testPool(t))

	products, err := repo.GetProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", products)
	}
}

func TestProductRepository_CreateAndList(t *testing.T) {
	repo := NewProductRepository(testPool(t))
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if _, err := repo.CreateProduct(ctx, name, "", decimal.RequireFromString("1.50")); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	products, err := repo.GetProducts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	for i, want := range []string{"A", "B", "C"} {
		if products[i].Name != want {
			t.Errorf("product %d: expected %s, got %s", i, want, products[i].Name)
		}
	}
	if !products[0].Price.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("unexpected price %s", products[0].Price)
	}
}

func TestProductRepository_CreateProduct_Duplicate(t *testing.T) {
	repo := NewProductRepository(testPool(t))
	ctx := context.Background()

	if _, err := repo.CreateProduct(ctx, "A", "", decimal.Zero); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := repo.CreateProduct(ctx, "A", "", decimal.Zero)
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatalf("expected a PgError, got %v", err)
	}
	if sqlerr.MapCode(pgErr.Code) != sqlerr.UniqueViolation {
		t.Errorf("expected unique violation, got %s", pgErr.Code)
	}
}
