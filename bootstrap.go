package storefront

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"gofalre.io/storefront/cart"
	"gofalre.io/storefront/config"
	"gofalre.io/storefront/driver"
	"gofalre.io/storefront/notify"
	"gofalre.io/storefront/product"
	"gofalre.io/storefront/stock"
	"gofalre.io/storefront/storage"
)

// New wires a Controller from cfg. The returned cleanup closes the controller and every
// connection New opened; it must be called once the controller is no longer used.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Controller, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 1. 目錄 API
	api, err := driver.ConnectAPI(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)
	if err != nil {
		return nil, nil, err
	}

	// 2. 儲存
	store, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStore)

	// 3. 通知與事件
	notifiers := notify.Multi{notify.NewLogNotifier(logger)}
	var publisher EventPublisher
	if cfg.NATS.URL != "" {
		natsConn, err := driver.ConnectNATS(cfg.NATS.URL, cfg.App.Name, logger)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to connect to nats: %w", err)
		}
		closers = append(closers, natsConn.Close)

		notifiers = append(notifiers, notify.NewNATSNotifier(natsConn, cfg.NATS.SubjectPrefix+".notification.error", logger))
		publisher = NewEventManager(natsConn, cfg.NATS.SubjectPrefix, logger)
	}

	// 4. 控制器
	c, err := NewController(ctx,
		cart.NewRepository(store, cfg.Storage.Key, logger),
		stock.NewRepository(api, logger),
		product.NewRepository(api, logger),
		notifiers, publisher, logger,
		Options{
			StrictLoad: cfg.Storage.StrictLoad,
			Currency:   stripe.Currency(cfg.Cart.Currency),
			QueueSize:  cfg.Cart.QueueSize,
		})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, c.Close)

	return c, cleanup, nil
}

func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory, "":
		return storage.NewMemoryStore(), func() {}, nil

	case config.StorageRedis:
		client, err := driver.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return storage.NewRedisStore(client, logger), func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}, nil

	case config.StoragePostgres:
		db, err := driver.ConnectSQL(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store := storage.NewPostgresStore(db.Pool, driver.NewTransactionManager(db.Pool, logger), logger)
		if err = store.EnsureSchema(ctx); err != nil {
			db.Pool.Close()
			return nil, nil, err
		}
		return store, db.Pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
