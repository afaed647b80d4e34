package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tilemart/storefront-backend/internal/data/repos/catalog"
	types "github.com/tilemart/storefront-backend/internal/domain"
	apperrors "github.com/tilemart/storefront-backend/internal/pkg/errors"
	"github.com/tilemart/storefront-backend/internal/pkg/logger"
)

// CatalogService is the thin read/admin surface over the product catalog.
// Stock levels and purchase limits are not its concern.
type CatalogService interface {
	ListProducts(ctx context.Context, search, category string) ([]*types.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error)
	CreateProduct(ctx context.Context, product *types.Product) (*types.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

type catalogService struct {
	log         *logger.Logger
	productRepo catalog.ProductRepo
}

func NewCatalogService(log *logger.Logger, productRepo catalog.ProductRepo) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{log: serviceLog, productRepo: productRepo}
}

func (cs *catalogService) ListProducts(ctx context.Context, search, category string) ([]*types.Product, error) {
	products, err := cs.productRepo.List(ctx, nil, search, category)
	if err != nil {
		return nil, apperrors.NewStoreError("list products", err)
	}
	return products, nil
}

func (cs *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
	products, err := cs.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, apperrors.NewStoreError("load product", err)
	}
	if len(products) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return products[0], nil
}

func (cs *catalogService) CreateProduct(ctx context.Context, product *types.Product) (*types.Product, error) {
	if strings.TrimSpace(product.SKU) == "" {
		return nil, apperrors.NewValidationError("sku", "must not be empty")
	}
	if strings.TrimSpace(product.Name) == "" {
		return nil, apperrors.NewValidationError("name", "must not be empty")
	}

	created, err := cs.productRepo.Create(ctx, nil, []*types.Product{product})
	if err != nil {
		return nil, apperrors.NewStoreError("create product", err)
	}
	return created[0], nil
}

func (cs *catalogService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := cs.productRepo.Delete(ctx, nil, productID); err != nil {
		return apperrors.NewStoreError("delete product", err)
	}
	return nil
}
