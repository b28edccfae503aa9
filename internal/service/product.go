package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/storefront/internal/model"
)

// ProductStore is the record store behind ProductService.
type ProductStore interface {
	GetProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, name, description string, price decimal.Decimal) (*model.Product, error)
}

// ProductNotifier schedules the new product notification.
type ProductNotifier interface {
	EnqueueProductCreated(ctx context.Context, productID int64, name, price string) error
}

type ProductService struct {
	store    ProductStore
	notifier ProductNotifier
	logger   *zerolog.Logger
}

// NewProductService builds the service. notifier may be nil, in which case
// no notification is scheduled.
func NewProductService(store ProductStore, notifier ProductNotifier, logger *zerolog.Logger) *ProductService {
	return &ProductService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// ListProducts returns the full catalog in store order. It never writes.
func (s *ProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.store.GetProducts(ctx)
}

// CreateProduct stores a product and schedules its notification. The
// notification is best effort: an enqueue failure is logged but the product
// stays created.
func (s *ProductService) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal) (*model.Product, error) {
	product, err := s.store.CreateProduct(ctx, name, description, price)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueProductCreated(ctx, product.ID, product.Name, product.Price.StringFixed(2)); err != nil {
			s.requestLogger(ctx).Error().
				Err(err).
				Int64("product_id", product.ID).
				Msg("failed to enqueue product created notification")
		}
	}

	return product, nil
}

// requestLogger prefers the request-scoped logger carried by ctx.
func (s *ProductService) requestLogger(ctx context.Context) *zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return s.logger
}
