package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
)

type staticCatalog []model.Product

func (s staticCatalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s, nil
}

func (s staticCatalog) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal) (*model.Product, error) {
	return &model.Product{ID: 1, Name: name}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	cfg := config.DefaultConfig()
	cfg.Auth.SecretKey = "sk_test_unused"
	s := &server.Server{Config: cfg, Logger: &logger}

	h := &handler.Handlers{
		Health:  handler.NewHealthHandler(s),
		Product: handler.NewProductHandler(s, staticCatalog{{ID: 1, Name: "Espresso"}}),
	}

	r, err := NewRouter(s, h)
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	return r
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
		want   int
		body   string
	}{
		{http.MethodGet, "/", http.StatusOK, "Espresso"},
		{http.MethodGet, "/status", http.StatusOK, `"status":"healthy"`},
		{http.MethodGet, "/static/style.css", http.StatusOK, ".product"},
		{http.MethodGet, "/missing", http.StatusNotFound, "Route not found"},
		{http.MethodPost, "/api/v1/products", http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.body) {
				t.Errorf("expected body to contain %q, got %s", tc.body, rec.Body.String())
			}
		})
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}
