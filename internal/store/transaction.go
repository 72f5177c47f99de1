// Package store provides abstractions and implementations for data persistence
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/livefit/livefit-api/internal/platform/logger"
)

// TxFn is the unit of work executed inside a transaction. Returning nil
// commits; returning an error (or panicking) rolls back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn in a transaction at the driver's default isolation
// level (READ COMMITTED on Postgres).
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	return RunInTransactionWithOptions(ctx, db, nil, fn)
}

// RunInTransactionWithOptions runs fn in a transaction started with opts.
//
// Errors from fn are returned as-is after the rollback so callers can keep
// matching their sentinels; begin and commit failures wrap
// ErrTransactionFailed. A panic inside fn rolls back and is re-raised.
func RunInTransactionWithOptions(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, beginErr := db.BeginTx(ctx, opts)
	if beginErr != nil {
		log.Error("failed to begin transaction", slog.String("error", beginErr.Error()))
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrTransactionFailed, beginErr)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction after panic",
				slog.String("error", rbErr.Error()),
				slog.Any("panic", p))
		} else {
			log.Error("rolled back transaction after panic", slog.Any("panic", p))
		}
		// ALLOW-PANIC: the caller's panic is propagated after cleanup
		panic(p)
	}()

	if fnErr := fn(ctx, tx); fnErr != nil {
		return rollback(log, tx, fnErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		// a failed commit has already ended the transaction on the server
		log.Error("failed to commit transaction", slog.String("error", commitErr.Error()))
		return fmt.Errorf("%w: failed to commit transaction: %w", ErrTransactionFailed, commitErr)
	}

	log.Debug("transaction committed")
	return nil
}

// rollback aborts tx after cause and returns cause, annotated with the
// rollback failure if there was one.
func rollback(log *slog.Logger, tx *sql.Tx, cause error) error {
	rbErr := tx.Rollback()
	if rbErr == nil {
		log.Debug("rolled back transaction", slog.String("cause", cause.Error()))
		return cause
	}

	log.Error("failed to roll back transaction",
		slog.String("rollback_error", rbErr.Error()),
		slog.String("original_error", cause.Error()))
	// cause stays the wrapped error; the rollback failure is context only
	return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, cause)
}
