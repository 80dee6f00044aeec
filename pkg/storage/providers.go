package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	bunrepo "github.com/goliatone/go-delivery-notes/internal/storage/bun"
	"github.com/goliatone/go-delivery-notes/internal/storage/memory"
	"github.com/goliatone/go-delivery-notes/pkg/config"
	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// ErrUnsupportedDriver is returned for persistence drivers this module cannot open.
var ErrUnsupportedDriver = errors.New("storage: unsupported persistence driver")

// Providers exposes the repositories needed by services.
type Providers struct {
	Orders      store.OrderRepository
	Transaction store.TransactionManager
	// Close releases the underlying database, if any.
	Close func() error
}

type Option func(*Providers)

// WithOrderRepository swaps the order repository, e.g. for a shop adapter.
func WithOrderRepository(repo store.OrderRepository) Option {
	return func(p *Providers) {
		if repo != nil {
			p.Orders = repo
		}
	}
}

// NewMemoryProviders returns repositories backed by in-memory maps.
func NewMemoryProviders(opts ...Option) Providers {
	providers := Providers{
		Orders:      memory.NewOrderRepository(),
		Transaction: &store.LockingTransactionManager{},
		Close:       func() error { return nil },
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
	persistence.RegisterModel(
		(*domain.OrderRecord)(nil),
	)

	providers := Providers{
		Orders:      bunrepo.NewOrderRepository(db),
		Transaction: &store.LockingTransactionManager{},
		Close:       func() error { return nil },
	}

	for _, opt := range opts {
		opt(&providers)
	}
	return providers
}

// Open builds providers for the configured driver. For sqlite it opens the
// database, creates the orders table when missing and hands the close func
// back through Providers.Close.
func Open(ctx context.Context, cfg config.PersistenceConfig, opts ...Option) (Providers, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", config.DriverMemory:
		return NewMemoryProviders(opts...), nil
	case config.DriverSQLite:
		db, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return Providers{}, err
		}
		providers := NewBunProviders(db, opts...)
		providers.Close = db.Close
		return providers, nil
	default:
		return Providers{}, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}
}

// OpenSQLite opens a sqlite database through sqliteshim and ensures the schema.
func OpenSQLite(ctx context.Context, dsn string) (*bun.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "file::memory:?cache=shared"
	}
	sqldb, err := sql.Open(sqliteshim.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables used by the bun repositories.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*domain.OrderRecord)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table: %w", err)
		}
	}
	return nil
}
