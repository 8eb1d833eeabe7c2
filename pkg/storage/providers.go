package storage

import (
	"context"
	"database/sql"

	bunrepo "github.com/goliatone/go-linktags/internal/storage/bun"
	"github.com/goliatone/go-linktags/internal/storage/memory"
	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Providers exposes the repositories link providers read from.
type Providers struct {
	Pages       store.PageRepository
	Transaction store.TransactionManager
}

type Option func(*Providers)

// WithPageRepository swaps in a custom content repository.
func WithPageRepository(repo store.PageRepository) Option {
	return func(p *Providers) {
		if repo != nil {
			p.Pages = repo
		}
	}
}

// NewMemoryProviders returns repositories backed by in-memory maps.
func NewMemoryProviders(opts ...Option) Providers {
	providers := Providers{
		Pages:       memory.NewPageRepository(),
		Transaction: &store.NopTransactionManager{},
	}
	for _, opt := range opts {
		opt(&providers)
	}
	return providers
}

// NewBunProviders wires Bun-backed repositories using go-repository-bun.
// The caller owns the *bun.DB lifecycle.
func NewBunProviders(db *bun.DB, opts ...Option) Providers {
	if db == nil {
		panic("storage: bun DB is required")
	}

	// Register models so go-persistence-bun migrations can pick them up.
	persistence.RegisterModel((*domain.Page)(nil))

	providers := Providers{
		Pages:       bunrepo.NewPageRepository(db),
		Transaction: &bunTxManager{db: db},
	}
	for _, opt := range opts {
		opt(&providers)
	}
	return providers
}

// CreateSchema creates the tables and indexes used by the bun repositories.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	return bunrepo.CreateSchema(ctx, db)
}

type bunTxManager struct {
	db *bun.DB
}

func (m *bunTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(bunrepo.WithTx(ctx, tx))
	})
}

// OpenSQLite opens a bun DB on the sqlite driver and creates the schema.
func OpenSQLite(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.DriverName(), dsn)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := CreateSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
