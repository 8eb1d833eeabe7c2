package store

import "context"

// TransactionManager groups repository writes into one unit of work.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTransactionManager runs the callback directly, for in-memory storage.
type NopTransactionManager struct{}

var _ TransactionManager = (*NopTransactionManager)(nil)

func (n *NopTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}
