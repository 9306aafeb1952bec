package product

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"gofalre.io/storefront/driver"
	"gofalre.io/storefront/models"
)

var _ Repository = (*repository)(nil)

type Repository interface {
	// GetProduct returns the catalog record for productID. Amount is always zero.
	GetProduct(ctx context.Context, productID uint64) (*models.Product, error)
}

type repository struct {
	api    *driver.APIClient
	logger *zap.Logger
}

func NewRepository(api *driver.APIClient, logger *zap.Logger) Repository {
	return &repository{
		api:    api,
		logger: logger,
	}
}

func (r *repository) GetProduct(ctx context.Context, productID uint64) (*models.Product, error) {
	var product models.Product
	if err := r.api.Get(ctx, &product, "products", strconv.FormatUint(productID, 10)); err != nil {
		r.logger.Error("Failed to get product", zap.Uint64("product_id", productID), zap.Error(err))
		return nil, err
	}

	if product.ID == 0 {
		product.ID = productID
	}
	if product.ID != productID {
		return nil, fmt.Errorf("catalog returned product %d, expected %d", product.ID, productID)
	}
	product.Amount = 0

	return &product, nil
}
