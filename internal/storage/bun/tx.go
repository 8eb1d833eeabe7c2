package bunrepo

import (
	"context"

	"github.com/uptrace/bun"
)

type txKey struct{}

// WithTx scopes repository calls made with the returned context to tx.
func WithTx(ctx context.Context, tx bun.IDB) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFrom returns the transaction stored by WithTx, if any.
func TxFrom(ctx context.Context) (bun.IDB, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txKey{}).(bun.IDB)
	return tx, ok && tx != nil
}

func conn(ctx context.Context, db *bun.DB) bun.IDB {
	if tx, ok := TxFrom(ctx); ok {
		return tx
	}
	return db
}
