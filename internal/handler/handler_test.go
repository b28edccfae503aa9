package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/view"
)

type fakeCatalog struct {
	products []model.Product
	listErr  error
	calls    int
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal) (*model.Product, error) {
	p := model.Product{ID: int64(len(f.products) + 1), Name: name, Description: description, Price: price}
	f.products = append(f.products, p)
	return &p, nil
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	logger := zerolog.Nop()
	return &server.Server{Config: config.DefaultConfig(), Logger: &logger}
}

func newTestEcho(t *testing.T, s *server.Server, catalog ProductCatalog) *echo.Echo {
	t.Helper()

	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler

	h := NewProductHandler(s, catalog)
	e.GET("/", HandleHTML(h.Handler, h.Home, http.StatusOK, &HomeRequest{}, view.TemplateHome))
	e.POST("/api/v1/products", Handle(h.Handler, h.CreateProduct, http.StatusCreated, &model.CreateProductRequest{}))

	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHome_EmptyStore(t *testing.T) {
	e := newTestEcho(t, newTestServer(t), &fakeCatalog{})

	rec := get(e, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
		t.Errorf("expected HTML content type, got %q", rec.Header().Get(echo.HeaderContentType))
	}
	if strings.Contains(rec.Body.String(), `<li class="product"`) {
		t.Error("expected an empty product list")
	}
}

func TestHome_ListsProductsInStoreOrder(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}}
	e := newTestEcho(t, newTestServer(t), catalog)

	body := get(e, "/").Body.String()

	if got := strings.Count(body, `<li class="product"`); got != 3 {
		t.Fatalf("expected 3 products, got %d", got)
	}
	a, b, c := strings.Index(body, ">A<"), strings.Index(body, ">B<"), strings.Index(body, ">C<")
	if !(a >= 0 && a < b && b < c) {
		t.Errorf("expected A, B, C in order, got positions %d %d %d", a, b, c)
	}
}

func TestHome_DoesNotModifyStore(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}
	e := newTestEcho(t, newTestServer(t), catalog)

	first := get(e, "/").Body.String()
	second := get(e, "/").Body.String()

	if len(catalog.products) != 2 || catalog.products[0].Name != "A" || catalog.products[1].Name != "B" {
		t.Errorf("store changed after rendering: %+v", catalog.products)
	}
	if first != second {
		t.Error("expected identical pages for an unchanged store")
	}
	if catalog.calls != 2 {
		t.Errorf("expected one store read per request, got %d", catalog.calls)
	}
}

func TestHome_StoreErrorPropagates(t *testing.T) {
	e := newTestEcho(t, newTestServer(t), &fakeCatalog{listErr: errors.New("connection refused")})

	rec := get(e, "/")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body errs.HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if strings.Contains(body.Message, "connection refused") {
		t.Error("internal error details leaked to the client")
	}
}

func TestHome_IgnoresRequestBodyAndQuery(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{{ID: 1, Name: "Pizza"}}}
	e := newTestEcho(t, newTestServer(t), catalog)

	for _, contentType := range []string{echo.MIMEApplicationJSON, echo.MIMETextPlain} {
		t.Run(contentType, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?name=x", strings.NewReader("{"))
			req.Header.Set(echo.HeaderContentType, contentType)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			body := rec.Body.String()
			if !strings.Contains(body, "<h1>Products</h1>") || !strings.Contains(body, ">Pizza<") {
				t.Errorf("expected the product page, got %s", body)
			}
		})
	}
}

func TestHandleHTML_MissingTemplate(t *testing.T) {
	s := newTestServer(t)
	e := newTestEcho(t, s, &fakeCatalog{})
	h := NewProductHandler(s, &fakeCatalog{})
	e.GET("/broken", HandleHTML(h.Handler, h.Home, http.StatusOK, &HomeRequest{}, "missing.html"))

	rec := get(e, "/broken")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		t.Errorf("expected JSON content type, got %q", rec.Header().Get(echo.HeaderContentType))
	}
	var body errs.HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if body.Code != "INTERNAL_SERVER_ERROR" {
		t.Errorf("expected INTERNAL_SERVER_ERROR, got %s", body.Code)
	}
	if strings.Contains(body.Message, "missing.html") {
		t.Error("template name leaked to the client")
	}
}

func TestCreateProduct(t *testing.T) {
	catalog := &fakeCatalog{}
	e := newTestEcho(t, newTestServer(t), catalog)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Pizza","price":"9.99"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var product model.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &product); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if product.Name != "Pizza" || !product.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("unexpected product: %+v", product)
	}
}

func TestCreateProduct_ValidationError(t *testing.T) {
	catalog := &fakeCatalog{}
	e := newTestEcho(t, newTestServer(t), catalog)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"","price":"-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(catalog.products) != 0 {
		t.Error("expected nothing to be stored")
	}
}

func TestCreateProduct_PriceTooLarge(t *testing.T) {
	catalog := &fakeCatalog{}
	e := newTestEcho(t, newTestServer(t), catalog)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Yacht","price":"10000000000"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(catalog.products) != 0 {
		t.Error("expected nothing to be stored")
	}
}

func TestCreateProduct_UnsupportedMediaType(t *testing.T) {
	catalog := &fakeCatalog{}
	e := newTestEcho(t, newTestServer(t), catalog)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader("name=Pizza"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(catalog.products) != 0 {
		t.Error("expected nothing to be stored")
	}
}

func TestCheckHealth(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	s := newTestServer(t)
	s.Redis = client
	h := NewHealthHandler(s)

	e := echo.New()
	e.GET("/status", h.CheckHealth)

	rec := get(e, "/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Checks["redis"].Status != "healthy" {
		t.Errorf("expected healthy redis, got %+v", body.Checks["redis"])
	}

	mr.Close()

	rec = get(e, "/status")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with redis down, got %d", rec.Code)
	}
}
