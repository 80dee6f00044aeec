package store

import (
	"context"
	"sync"
)

// TransactionManager runs a unit of repository work, such as the
// read-then-write of an order upsert.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTransactionManager executes callbacks immediately.
type NopTransactionManager struct{}

var _ TransactionManager = (*NopTransactionManager)(nil)

func (n *NopTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// LockingTransactionManager serializes units of work within the process so
// two upserts of the same reference cannot both create a record.
type LockingTransactionManager struct {
	mu sync.Mutex
}

var _ TransactionManager = (*LockingTransactionManager)(nil)

func (m *LockingTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
