package stock

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"gofalre.io/storefront/driver"
	"gofalre.io/storefront/models"
)

var _ Repository = (*repository)(nil)

// Repository reads stock levels from the catalog API. Results are never cached.
type Repository interface {
	GetStock(ctx context.Context, productID uint64) (*models.Stock, error)
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

func (r *repository) GetStock(ctx context.Context, productID uint64) (*models.Stock, error) {
	var stock models.Stock
	if err := r.api.Get(ctx, &stock, "stock", strconv.FormatUint(productID, 10)); err != nil {
		r.logger.Error("failed to get stock", zap.Uint64("product_id", productID), zap.Error(err))
		return nil, err
	}

	if stock.ID == 0 {
		stock.ID = productID
	}
	if stock.ID != productID {
		return nil, fmt.Errorf("catalog returned stock for product %d, expected %d", stock.ID, productID)
	}
	if stock.Amount < 0 {
		return nil, fmt.Errorf("catalog returned negative stock %d for product %d", stock.Amount, productID)
	}

	return &stock, nil
}
