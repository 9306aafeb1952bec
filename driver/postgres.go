// Package driver
package driver

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPool is an interface that represents a connection pool to a driver.
type PostgresPool interface {
	// BeginTx starts a new transaction and returns a Tx.
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)

	// Exec executes an SQL command and returns the command tag.
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)

	// QueryRow executes an SQL query and returns a single row.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row

	// Close closes the pool and all its connections.
	Close()
}

// DB holds the driver connection pool
type DB struct {
	Pool PostgresPool
}

// maxOpenDbConn defines the maximum number of open driver connections.
// A cart controller issues one statement at a time, so the pool stays small.
const maxOpenDbConn = 4

// maxDbLifetime is the maximum lifetime of a driver connection in the pool.
// When a connection reaches its maximum lifetime, it will be closed and a new connection will be created.
const maxDbLifetime = 5 * time.Minute

// ConnectSQL connects to the Postgres server described by dsn and returns a DB instance.
// The pool is verified by acquiring and releasing one connection before returning.
func ConnectSQL(ctx context.Context, dsn string) (*DB, error) {

	// parse the config
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConns = int32(maxOpenDbConn)
	config.MaxConnLifetime = maxDbLifetime

	// create the pool
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err = testDB(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

// testDB acquires and releases a connection from the pool
func testDB(ctx context.Context, p *pgxpool.Pool) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return nil
}
