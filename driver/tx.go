package driver

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransactionManager struct {
	conn   PostgresPool
	logger *zap.Logger
}

func NewTransactionManager(conn PostgresPool, logger *zap.Logger) *TransactionManager {
	return &TransactionManager{
		conn:   conn,
		logger: logger,
	}
}

func (m *TransactionManager) ExecuteTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return m.ExecuteTransactionWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (m *TransactionManager) ExecuteTransactionWithOptions(ctx context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) (err error) {
	dbTx, err := m.conn.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction failed: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			m.rollback(ctx, dbTx)
			m.logger.Error("panic in transaction", zap.Any("panic", p))
			panic(p) // re-throw panic after Rollback
		}
		if err != nil {
			m.rollback(ctx, dbTx)
			return
		}
		if err = dbTx.Commit(ctx); err != nil {
			m.logger.Error("commit transaction failed", zap.Error(err))
			err = fmt.Errorf("commit transaction failed: %w", err)
		}
	}()

	return fn(dbTx)
}

func (m *TransactionManager) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil {
		m.logger.Error("rollback failed", zap.Error(err))
	}
}
