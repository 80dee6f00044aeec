package bunrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OrderRepository stores orders through go-repository-bun. References are
// matched case-insensitively, like the memory store.
type OrderRepository struct {
	repo repository.Repository[*domain.OrderRecord]
}

var _ store.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(db *bun.DB) *OrderRepository {
	handlers := repository.ModelHandlers[*domain.OrderRecord]{
		NewRecord: func() *domain.OrderRecord { return &domain.OrderRecord{} },
		GetID:     func(o *domain.OrderRecord) uuid.UUID { return o.ID },
		SetID: func(o *domain.OrderRecord, id uuid.UUID) {
			o.ID = id
		},
		GetIdentifier:      func() string { return "reference" },
		GetIdentifierValue: func(o *domain.OrderRecord) string { return o.Reference },
	}
	return &OrderRepository{
		repo: repository.MustNewRepository[*domain.OrderRecord](db, handlers),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.OrderRecord) error {
	if order == nil || strings.TrimSpace(order.Reference) == "" {
		return errors.New("order reference is required")
	}
	if _, err := r.GetByReference(ctx, order.Reference); err == nil {
		return fmt.Errorf("%w: order %s", store.ErrConflict, order.Reference)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	order.EnsureID()
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if order.State == "" {
		order.State = domain.OrderStatusPending
	}
	_, err := r.repo.Create(ctx, order)
	return mapError(err)
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.OrderRecord) error {
	if order == nil || order.ID == uuid.Nil {
		return store.ErrNotFound
	}
	if existing, err := r.GetByReference(ctx, order.Reference); err == nil && existing.ID != order.ID {
		return fmt.Errorf("%w: order %s", store.ErrConflict, order.Reference)
	}
	order.UpdatedAt = time.Now().UTC()
	_, err := r.repo.Update(ctx, order)
	return mapError(err)
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderRecord, error) {
	order, err := r.repo.Get(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id).Where("deleted_at IS NULL")
	})
	return order, mapError(err)
}

func (r *OrderRepository) GetByReference(ctx context.Context, reference string) (*domain.OrderRecord, error) {
	reference = strings.ToLower(strings.TrimSpace(reference))
	if reference == "" {
		return nil, store.ErrNotFound
	}
	order, err := r.repo.Get(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(reference) = ?", reference).Where("deleted_at IS NULL")
	})
	return order, mapError(err)
}

func (r *OrderRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.OrderRecord], error) {
	return r.list(ctx, opts, nil)
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string, opts store.ListOptions) (store.ListResult[domain.OrderRecord], error) {
	return r.list(ctx, opts, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("customer_id = ?", customerID)
	})
}

// SoftDelete stamps deleted_at. The model's soft_delete tag hides the row
// from every later select unless a list asks for deleted rows.
func (r *OrderRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	order, err := r.repo.Get(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	})
	if err != nil {
		return mapError(err)
	}
	if order.DeletedAt.IsZero() {
		order.DeletedAt = time.Now().UTC()
	}
	_, err = r.repo.Update(ctx, order)
	return mapError(err)
}

func (r *OrderRepository) list(ctx context.Context, opts store.ListOptions, filter repository.SelectCriteria) (store.ListResult[domain.OrderRecord], error) {
	criteria := []repository.SelectCriteria{func(q *bun.SelectQuery) *bun.SelectQuery {
		if opts.IncludeSoftDeleted {
			q = q.WhereAllWithDeleted()
		}
		if !opts.Since.IsZero() {
			q = q.Where("created_at >= ?", opts.Since)
		}
		if !opts.Until.IsZero() {
			q = q.Where("created_at <= ?", opts.Until)
		}
		if opts.Limit > 0 {
			q = q.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			q = q.Offset(opts.Offset)
		}
		return q.Order("created_at ASC", "reference ASC")
	}}
	if filter != nil {
		criteria = append(criteria, filter)
	}
	records, total, err := r.repo.List(ctx, criteria...)
	if err != nil {
		return store.ListResult[domain.OrderRecord]{}, mapError(err)
	}
	items := make([]domain.OrderRecord, len(records))
	for i, rec := range records {
		items[i] = *rec
	}
	return store.ListResult[domain.OrderRecord]{Items: items, Total: total}, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if repository.IsRecordNotFound(err) {
		return store.ErrNotFound
	}
	return err
}
