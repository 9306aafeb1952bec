package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gofalre.io/storefront/models"
	"gofalre.io/storefront/storage"
)

// DefaultStorageKey is the key the serialized cart lives under.
const DefaultStorageKey = "@RocketShoes:cart"

// ErrCorruptCart is returned by Load when the stored value cannot be turned back into a cart.
var ErrCorruptCart = errors.New("stored cart is corrupt")

var _ Repository = (*repository)(nil)

type Repository interface {
	// Load returns the persisted cart, or an empty cart when nothing is stored.
	Load(ctx context.Context) (models.Cart, error)
	// Save replaces the persisted cart with cart.
	Save(ctx context.Context, cart models.Cart) error
	// Reset deletes the persisted cart.
	Reset(ctx context.Context) error
}

type repository struct {
	store  storage.Store
	key    string
	logger *zap.Logger
}

func NewRepository(store storage.Store, key string, logger *zap.Logger) Repository {
	if key == "" {
		key = DefaultStorageKey
	}
	return &repository{
		store:  store,
		key:    key,
		logger: logger,
	}
}

func (r *repository) Load(ctx context.Context) (models.Cart, error) {
	raw, found, err := r.store.GetItem(ctx, r.key)
	if err != nil {
		r.logger.Error("Failed to read cart", zap.String("key", r.key), zap.Error(err))
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if !found {
		return models.NewCart(), nil
	}

	var cart models.Cart
	if err = json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	if err = validate(cart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	if cart == nil {
		cart = models.NewCart()
	}

	return cart, nil
}

func (r *repository) Save(ctx context.Context, cart models.Cart) error {
	if cart == nil {
		cart = models.NewCart()
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err = r.store.SetItem(ctx, r.key, string(data)); err != nil {
		r.logger.Error("Failed to write cart", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("failed to write cart: %w", err)
	}

	return nil
}

func (r *repository) Reset(ctx context.Context) error {
	if err := r.store.RemoveItem(ctx, r.key); err != nil {
		r.logger.Error("Failed to reset cart", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("failed to reset cart: %w", err)
	}
	return nil
}

// validate rejects decoded carts that break the cart invariants.
func validate(cart models.Cart) error {
	seen := make(map[uint64]struct{}, len(cart))
	for _, item := range cart {
		if item.Amount < 1 {
			return fmt.Errorf("product %d has amount %d", item.ID, item.Amount)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("product %d appears more than once", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
