package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-delivery-notes/internal/storage/memory"
	"github.com/goliatone/go-delivery-notes/pkg/config"
	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
)

func TestOpenMemory(t *testing.T) {
	providers, err := Open(context.Background(), config.PersistenceConfig{Driver: config.DriverMemory})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if providers.Orders == nil || providers.Transaction == nil {
		t.Fatalf("expected memory providers")
	}
	if err := providers.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	providers, err := Open(ctx, config.PersistenceConfig{Driver: config.DriverSQLite, DSN: "file:providers_test?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer providers.Close()

	err = providers.Transaction.WithinTransaction(ctx, func(ctx context.Context) error {
		return providers.Orders.Create(ctx, &domain.OrderRecord{
			Reference: "S-1",
			State:     domain.OrderStatusPending,
			Email:     "jane@example.com",
		})
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := providers.Orders.GetByReference(ctx, "S-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.BillingEmail() != "jane@example.com" {
		t.Fatalf("unexpected email %s", got.BillingEmail())
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.PersistenceConfig{Driver: "postgres"}); !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected unsupported driver error, got %v", err)
	}
}

func TestOpenWithOrderRepository(t *testing.T) {
	orders := memory.NewOrderRepository()
	providers, err := Open(context.Background(), config.PersistenceConfig{Driver: config.DriverSQLite, DSN: "file:providers_override?mode=memory&cache=shared"}, WithOrderRepository(orders))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer providers.Close()

	if providers.Orders != store.OrderRepository(orders) {
		t.Fatalf("expected supplied order repository")
	}

	providers = NewMemoryProviders(WithOrderRepository(nil))
	if providers.Orders == nil {
		t.Fatalf("nil repository should keep the default")
	}
}
