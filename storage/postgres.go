package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gofalre.io/storefront/driver"
)

var _ Store = (*PostgresStore)(nil)

const createKeyValueTable = `
CREATE TABLE IF NOT EXISTS storefront_kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const getItem = `SELECT value FROM storefront_kv WHERE key = $1`

const setItem = `
INSERT INTO storefront_kv (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

const removeItem = `DELETE FROM storefront_kv WHERE key = $1`

type PostgresStore struct {
	conn               driver.PostgresPool
	transactionManager *driver.TransactionManager
	logger             *zap.Logger
}

func NewPostgresStore(conn driver.PostgresPool, tm *driver.TransactionManager, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		conn:               conn,
		transactionManager: tm,
		logger:             logger,
	}
}

// EnsureSchema creates the key-value table when it does not exist yet.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.conn.Exec(ctx, createKeyValueTable); err != nil {
		p.logger.Error("Failed to create key-value table", zap.Error(err))
		return err
	}
	return nil
}

func (p *PostgresStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.conn.QueryRow(ctx, getItem, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		p.logger.Error("Failed to get item", zap.String("key", key), zap.Error(err))
		return "", false, err
	}

	return value, true, nil
}

func (p *PostgresStore) SetItem(ctx context.Context, key string, value string) error {
	err := p.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, setItem, key, value)
		return err
	})
	if err != nil {
		p.logger.Error("Failed to set item", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

func (p *PostgresStore) RemoveItem(ctx context.Context, key string) error {
	if _, err := p.conn.Exec(ctx, removeItem, key); err != nil {
		p.logger.Error("Failed to remove item", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}
