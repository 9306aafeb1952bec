package storefront

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"gofalre.io/storefront/cart"
	"gofalre.io/storefront/models"
	"gofalre.io/storefront/models/enum"
	"gofalre.io/storefront/notify"
	"gofalre.io/storefront/product"
	"gofalre.io/storefront/stock"
)

// Controller owns the shopping cart. Failures never reach the caller: each one ends in a
// notification and leaves the cart as it was.
type Controller interface {
	Cart() models.Cart
	Summary() *models.Summary

	AddProduct(ctx context.Context, productID uint64)
	RemoveProduct(ctx context.Context, productID uint64)
	UpdateProductAmount(ctx context.Context, params cart.UpdateProductAmountParams)
	ClearCart(ctx context.Context)

	Close()
}

type Options struct {
	// StrictLoad makes NewController fail on a corrupt stored cart instead of starting empty.
	StrictLoad bool
	Currency   stripe.Currency
	QueueSize  int
}

type controller struct {
	cartRepo cart.Repository
	stock    stock.Repository
	product  product.Repository

	notifier  notify.Notifier
	publisher EventPublisher
	queue     *MutationQueue

	mu       sync.RWMutex
	cart     models.Cart
	currency stripe.Currency

	logger *zap.Logger
}

// NewController loads the persisted cart and starts the mutation queue. publisher may be nil.
func NewController(
	ctx context.Context,
	cartRepo cart.Repository, stockRepo stock.Repository, productRepo product.Repository,
	notifier notify.Notifier, publisher EventPublisher,
	logger *zap.Logger, opts Options) (Controller, error) {

	initial, err := cartRepo.Load(ctx)
	switch {
	case errors.Is(err, cart.ErrCorruptCart) && !opts.StrictLoad:
		logger.Warn("Stored cart is corrupt, starting with an empty cart", zap.Error(err))
		if resetErr := cartRepo.Reset(ctx); resetErr != nil {
			logger.Warn("Failed to discard corrupt cart", zap.Error(resetErr))
		}
		initial = models.NewCart()
	case err != nil:
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := &controller{
		cartRepo:  cartRepo,
		stock:     stockRepo,
		product:   productRepo,
		notifier:  notifier,
		publisher: publisher,
		cart:      initial,
		currency:  opts.Currency,
		logger:    logger,
	}
	c.queue = NewMutationQueue(opts.QueueSize, logger)

	return c, nil
}

// Cart returns a copy of the current cart.
func (c *controller) Cart() models.Cart {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cart.Clone()
}

func (c *controller) Summary() *models.Summary {
	return models.NewSummary(c.Cart(), c.currency)
}

func (c *controller) AddProduct(ctx context.Context, productID uint64) {
	c.run(ctx, operationAdd, func(ctx context.Context) error {
		return c.addProduct(ctx, productID)
	})
}

func (c *controller) RemoveProduct(ctx context.Context, productID uint64) {
	c.run(ctx, operationRemove, func(ctx context.Context) error {
		return c.removeProduct(ctx, productID)
	})
}

func (c *controller) UpdateProductAmount(ctx context.Context, params cart.UpdateProductAmountParams) {
	if params.Amount <= 0 {
		return
	}

	c.run(ctx, operationUpdate, func(ctx context.Context) error {
		return c.updateProductAmount(ctx, params)
	})
}

func (c *controller) ClearCart(ctx context.Context) {
	c.run(ctx, operationClear, func(ctx context.Context) error {
		if len(c.Cart()) == 0 {
			return nil
		}
		c.commit(ctx, models.NewCart(), enum.CartEventTypeCleared)
		return nil
	})
}

// Close stops the mutation queue after the queued mutations have run.
func (c *controller) Close() {
	c.queue.Shutdown()
}

func (c *controller) addProduct(ctx context.Context, productID uint64) error {
	// 1. 取得目前購物車
	newCart := c.Cart()

	// 2. 查詢庫存
	stockModel, err := c.stock.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to get stock for product %d: %w", productID, err)
	}

	// 3. 計算新數量並檢查庫存
	index := newCart.IndexOf(productID)
	currentAmount := 0
	if index >= 0 {
		currentAmount = newCart[index].Amount
	}
	amount := currentAmount + 1

	if amount > stockModel.Amount {
		return fmt.Errorf("product %d: requested %d, available %d: %w", productID, amount, stockModel.Amount, ErrStockExceeded)
	}

	// 4. 更新數量或新增商品
	if index >= 0 {
		newCart[index].Amount = amount
	} else {
		productModel, err := c.product.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to get product %d: %w", productID, err)
		}
		productModel.Amount = 1
		newCart = append(newCart, *productModel)
	}

	// 5. 提交
	c.commit(ctx, newCart, enum.CartEventTypeUpdated)
	return nil
}

func (c *controller) removeProduct(ctx context.Context, productID uint64) error {
	newCart := c.Cart()

	index := newCart.IndexOf(productID)
	if index < 0 {
		return fmt.Errorf("product %d: %w", productID, ErrProductNotInCart)
	}

	c.commit(ctx, slices.Delete(newCart, index, index+1), enum.CartEventTypeUpdated)
	return nil
}

func (c *controller) updateProductAmount(ctx context.Context, params cart.UpdateProductAmountParams) error {
	// 1. 查詢庫存
	stockModel, err := c.stock.GetStock(ctx, params.ProductID)
	if err != nil {
		return fmt.Errorf("failed to get stock for product %d: %w", params.ProductID, err)
	}

	if params.Amount > stockModel.Amount {
		return fmt.Errorf("product %d: requested %d, available %d: %w", params.ProductID, params.Amount, stockModel.Amount, ErrStockExceeded)
	}

	// 2. 更新購物車項目
	newCart := c.Cart()
	index := newCart.IndexOf(params.ProductID)
	if index < 0 {
		return fmt.Errorf("product %d: %w", params.ProductID, ErrProductNotInCart)
	}
	newCart[index].Amount = params.Amount

	c.commit(ctx, newCart, enum.CartEventTypeUpdated)
	return nil
}

// run executes fn on the mutation queue and turns its error into a notification.
func (c *controller) run(ctx context.Context, op operation, fn func(ctx context.Context) error) {
	var opErr error
	if err := c.queue.Submit(ctx, func(ctx context.Context) {
		opErr = fn(ctx)
	}); err != nil {
		opErr = err
	}

	if opErr != nil {
		c.report(ctx, op, opErr)
	}
}

func (c *controller) report(ctx context.Context, op operation, err error) {
	if errors.Is(err, ErrStockExceeded) {
		c.logger.Info("Requested amount exceeds stock", zap.String("operation", op.name), zap.Error(err))
		c.notifier.Error(ctx, MessageStockExceeded)
		return
	}

	c.logger.Warn("Cart operation failed", zap.String("operation", op.name), zap.Error(err))
	c.notifier.Error(ctx, op.failureMessage)
}

// commit replaces the in-memory cart and, when the contents changed, persists it and
// publishes an event. Persistence is best-effort: a failed write keeps the new state.
func (c *controller) commit(ctx context.Context, newCart models.Cart, eventType enum.CartEventType) {
	c.mu.Lock()
	previous := c.cart
	c.cart = newCart
	c.mu.Unlock()

	if previous.Equal(newCart) {
		return
	}

	// The commit already happened; a caller cancelling now must not skip the write.
	ctx = context.WithoutCancel(ctx)

	if err := c.cartRepo.Save(ctx, newCart); err != nil {
		c.logger.Error("Failed to persist cart", zap.Error(err))
		return
	}

	if c.publisher == nil {
		return
	}
	if err := c.publisher.PublishCartEvent(ctx, newCartEvent(eventType, newCart.Clone())); err != nil {
		c.logger.Warn("Failed to publish cart event", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
