package postrge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/fonarev/gopherwallet.git/internal/storage/txctx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var timeouts = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

func isConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.SQLState(), "08") {
			return true
		}
	}
	return false
}

type Connection struct {
	pool *pgxpool.Pool
}

func NewConnection(ctx context.Context, settings string) (*Connection, error) {
	logger.Log.Info("Connecting to database")
	pool, err := pgxpool.New(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("can not connect with database: %w", err)
	}
	c := &Connection{pool: pool}

	if err = c.PingCtx(ctx); err != nil {
		return nil, fmt.Errorf("access to database: %w", err)
	}
	logger.Log.Info("Database initial connection successful")

	if err = c.MigrateCtx(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// PingCtx retries transient connection errors before giving up.
func (c *Connection) PingCtx(ctx context.Context) error {
	var err error
	for i, timeout := range timeouts {
		err = c.pool.Ping(ctx)
		if err == nil {
			return nil
		}
		if !isConnectionError(err) {
			return err
		}
		logger.Log.Info("database unreachable, retrying",
			zap.Int("attempt", i+1),
			zap.Duration("timeout", timeout))
		time.Sleep(timeout)
	}
	return fmt.Errorf("database unreachable: %w", err)
}

func (c *Connection) MigrateCtx(ctx context.Context) error {
	for _, query := range migrations {
		if _, err := c.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	logger.Log.Info("Migrations applied")
	return nil
}

func (c *Connection) Pool() *pgxpool.Pool {
	return c.pool
}

func (c *Connection) Close() {
	c.pool.Close()
}

// RunInTx begins a transaction, stores it in the context and calls fn.
// fn error causes rollback, otherwise the transaction commits.
func (c *Connection) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	ctx = txctx.Inject(ctx, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
