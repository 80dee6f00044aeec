package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
	"github.com/google/uuid"
)

// OrderRepository keeps orders in memory, indexed by id and by lowercased
// reference. Soft-deleted orders drop out of the reference index.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.OrderRecord
	refs   map[string]uuid.UUID
}

var _ store.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[uuid.UUID]domain.OrderRecord),
		refs:   make(map[string]uuid.UUID),
	}
}

func (r *OrderRepository) Create(_ context.Context, record *domain.OrderRecord) error {
	if record == nil {
		return errors.New("order record is required")
	}
	key := referenceKey(record.Reference)
	if key == "" {
		return errors.New("order reference is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.refs[key]; taken {
		return fmt.Errorf("%w: order %s", store.ErrConflict, record.Reference)
	}
	record.EnsureID()
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	r.orders[record.ID] = *record
	r.refs[key] = record.ID
	return nil
}

func (r *OrderRepository) Update(_ context.Context, record *domain.OrderRecord) error {
	if record == nil || record.ID == uuid.Nil {
		return store.ErrNotFound
	}
	key := referenceKey(record.Reference)

	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[record.ID]
	if !ok {
		return store.ErrNotFound
	}
	if owner, taken := r.refs[key]; taken && owner != record.ID {
		return fmt.Errorf("%w: order %s", store.ErrConflict, record.Reference)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = existing.CreatedAt
	}
	record.UpdatedAt = time.Now().UTC()
	delete(r.refs, referenceKey(existing.Reference))
	r.orders[record.ID] = *record
	if record.DeletedAt.IsZero() && key != "" {
		r.refs[key] = record.ID
	}
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok || !order.DeletedAt.IsZero() {
		return nil, store.ErrNotFound
	}
	return &order, nil
}

func (r *OrderRepository) GetByReference(_ context.Context, reference string) (*domain.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.refs[referenceKey(reference)]
	if !ok {
		return nil, store.ErrNotFound
	}
	order := r.orders[id]
	return &order, nil
}

func (r *OrderRepository) List(_ context.Context, opts store.ListOptions) (store.ListResult[domain.OrderRecord], error) {
	return r.list(opts, nil), nil
}

func (r *OrderRepository) ListByCustomer(_ context.Context, customerID string, opts store.ListOptions) (store.ListResult[domain.OrderRecord], error) {
	return r.list(opts, func(o domain.OrderRecord) bool {
		return o.CustomerID == customerID
	}), nil
}

func (r *OrderRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	if order.DeletedAt.IsZero() {
		order.DeletedAt = time.Now().UTC()
		r.orders[id] = order
	}
	if owner, ok := r.refs[referenceKey(order.Reference)]; ok && owner == id {
		delete(r.refs, referenceKey(order.Reference))
	}
	return nil
}

func (r *OrderRepository) list(opts store.ListOptions, filter func(domain.OrderRecord) bool) store.ListResult[domain.OrderRecord] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.OrderRecord
	for _, order := range r.orders {
		switch {
		case !opts.IncludeSoftDeleted && !order.DeletedAt.IsZero():
			continue
		case !opts.Since.IsZero() && order.CreatedAt.Before(opts.Since):
			continue
		case !opts.Until.IsZero() && order.CreatedAt.After(opts.Until):
			continue
		case filter != nil && !filter(order):
			continue
		}
		matched = append(matched, order)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].Reference < matched[j].Reference
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := len(matched)
	start := min(max(opts.Offset, 0), total)
	end := total
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}
	return store.ListResult[domain.OrderRecord]{Items: matched[start:end], Total: total}
}

func referenceKey(reference string) string {
	return strings.ToLower(strings.TrimSpace(reference))
}
