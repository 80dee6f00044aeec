package bunrepo

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupSQLiteDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.DriverName(), "file::memory:")
	if err != nil {
		t.Fatalf("sql open: %v", err)
	}
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if _, err := db.NewCreateTable().Model((*domain.OrderRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func TestOrderRepositoryBun(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := &domain.OrderRecord{
		Reference:  "1042",
		CustomerID: "cust-1",
		State:      domain.OrderStatusProcessing,
		Email:      "jane@example.com",
		Metadata:   domain.JSONMap{"source": "checkout"},
	}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByReference(ctx, "1042")
	if err != nil {
		t.Fatalf("get by reference: %v", err)
	}
	if got.BillingEmail() != "jane@example.com" || got.Metadata["source"] != "checkout" {
		t.Fatalf("unexpected record %+v", got)
	}

	got.State = domain.OrderStatusCompleted
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	reloaded, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if !reloaded.OrderStatus().IsCompleted() {
		t.Fatalf("expected completed, got %s", reloaded.State)
	}

	if err := repo.Create(ctx, &domain.OrderRecord{Reference: "1042", State: domain.OrderStatusPending}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := repo.GetByReference(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderRepositoryBunListByCustomer(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	seed := []domain.OrderRecord{
		{Reference: "1", CustomerID: "cust-1", State: domain.OrderStatusPending},
		{Reference: "2", CustomerID: "cust-1", State: domain.OrderStatusCompleted},
		{Reference: "3", CustomerID: "cust-2", State: domain.OrderStatusPending},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("create %s: %v", seed[i].Reference, err)
		}
	}

	list, err := repo.ListByCustomer(ctx, "cust-1", store.ListOptions{})
	if err != nil {
		t.Fatalf("list by customer: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("expected 2 orders, got %d", list.Total)
	}

	all, err := repo.List(ctx, store.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Total != 3 {
		t.Fatalf("expected 3 orders, got %d", all.Total)
	}
}
