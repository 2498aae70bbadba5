package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// txKey carries the active transaction through context.Context.
type txKey struct{}

// Querier is the query surface shared by the pool and a transaction, so
// repository code runs unchanged inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)

// TxRunner runs functions inside transactions with guaranteed commit or
// rollback.
type TxRunner struct {
	Pool *pgxpool.Pool
}

// NewTxRunner creates a TxRunner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{Pool: pool}
}

// WithinTx runs fn inside a transaction: commit on nil, rollback on
// error. The transaction is available to fn through TxFrom or
// (*TxRunner).Querier.
func (r *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := pgx.BeginFunc(ctx, r.Pool, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	return WrapErr("tx", err)
}

// WithinTxOptions is WithinTx with explicit transaction options.
func (r *TxRunner) WithinTxOptions(ctx context.Context, txOptions pgx.TxOptions, fn func(ctx context.Context) error) error {
	err := pgx.BeginTxFunc(ctx, r.Pool, txOptions, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	return WrapErr("tx", err)
}

// TxFrom extracts the active transaction from the context, if any.
func TxFrom(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// Querier returns the active transaction when the context carries one,
// otherwise the pool.
func (r *TxRunner) Querier(ctx context.Context) Querier {
	if tx, ok := TxFrom(ctx); ok {
		return tx
	}
	return r.Pool
}
