package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
	"github.com/google/uuid"
)

func TestOrderRepositoryMemory(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	order := &domain.OrderRecord{
		Reference:  "1042",
		CustomerID: "cust-1",
		State:      domain.OrderStatusProcessing,
		Email:      "jane@example.com",
	}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.ID == uuid.Nil || order.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps to be assigned")
	}

	got, err := repo.GetByReference(ctx, "1042")
	if err != nil {
		t.Fatalf("get by reference: %v", err)
	}
	if got.BillingEmail() != "jane@example.com" {
		t.Fatalf("unexpected email %s", got.BillingEmail())
	}

	got.State = domain.OrderStatusCompleted
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if !updated.OrderStatus().IsCompleted() {
		t.Fatalf("expected completed status, got %s", updated.State)
	}
	if !updated.CreatedAt.Equal(order.CreatedAt) {
		t.Fatalf("created_at should survive updates")
	}
}

func TestOrderRepositoryMemoryConflicts(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.OrderRecord{Reference: "A-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &domain.OrderRecord{Reference: "a-1"}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := repo.Create(ctx, &domain.OrderRecord{}); err == nil {
		t.Fatalf("expected missing reference error")
	}
}

func TestOrderRepositoryMemoryListAndDelete(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	for _, ref := range []string{"1", "2", "3"} {
		customer := "cust-1"
		if ref == "3" {
			customer = "cust-2"
		}
		if err := repo.Create(ctx, &domain.OrderRecord{Reference: ref, CustomerID: customer}); err != nil {
			t.Fatalf("create %s: %v", ref, err)
		}
	}

	mine, err := repo.ListByCustomer(ctx, "cust-1", store.ListOptions{})
	if err != nil {
		t.Fatalf("list by customer: %v", err)
	}
	if mine.Total != 2 {
		t.Fatalf("expected 2 orders, got %d", mine.Total)
	}

	page, err := repo.List(ctx, store.ListOptions{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 {
		t.Fatalf("unexpected page %d/%d", len(page.Items), page.Total)
	}

	first, _ := repo.GetByReference(ctx, "1")
	if err := repo.SoftDelete(ctx, first.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := repo.GetByReference(ctx, "1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected deleted order to be hidden, got %v", err)
	}
	all, _ := repo.List(ctx, store.ListOptions{IncludeSoftDeleted: true})
	if all.Total != 3 {
		t.Fatalf("expected soft deleted rows with IncludeSoftDeleted, got %d", all.Total)
	}
}
