package sqlite

import (
	"context"
	"database/sql"
)

type txKey struct{}

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Code written against it runs the same inside and outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// WithinTx runs fn in a transaction. The transaction is stored in the
// context so nested calls through TxFrom join it instead of opening a new
// one. A non-nil error from fn rolls back, otherwise the transaction
// commits.
func WithinTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, q Querier) error) error {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx, tx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return WrapErr("tx", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx), tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return WrapErr("tx", err)
	}
	return nil
}

// TxFrom returns the transaction carried by ctx, or db when none is
// in flight.
func TxFrom(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
