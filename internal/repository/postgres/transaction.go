package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"projecthub/internal/domain/repositories"
)

// TransactionManager runs units of work in pgx transactions begun with
// fixed options.
type TransactionManager struct {
	pool    *pgxpool.Pool
	logger  *slog.Logger
	options pgx.TxOptions
}

// NewTransactionManager uses the server's default isolation (read committed)
func NewTransactionManager(pool *pgxpool.Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, logger: logger}
}

// NewSnapshotTransactionManager creates a transaction manager whose
// transactions see a single snapshot for their whole lifetime. Multi-statement
// reads such as the statistics rollup use it.
func NewSnapshotTransactionManager(pool *pgxpool.Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{
		pool:   pool,
		logger: logger,
		options: pgx.TxOptions{
			IsoLevel:   pgx.RepeatableRead,
			AccessMode: pgx.ReadOnly,
		},
	}
}

// ExecTx runs fn in a transaction. A ctx that already carries one is
// joined, so services can compose without nesting.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if repositories.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := tm.pool.BeginTx(ctx, tm.options)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// After Commit this returns ErrTxClosed. WithoutCancel lets a
	// cancelled request still hand its connection back.
	defer func() {
		if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			tm.logger.Error("rollback failed", "error", err)
		}
	}()

	if err := fn(repositories.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
