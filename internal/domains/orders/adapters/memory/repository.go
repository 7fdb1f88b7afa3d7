package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order engine backed by a catalog gate. The
// mutex is held across validate-and-apply so the stock check-then-decrement
// sequence cannot race with a concurrent create.
type Repository struct {
	mu       sync.Mutex
	catalog  ports.ProductGate
	orders   map[int64]*domain.Order
	nextID   int64
	nextItem int64
}

func NewRepository(catalog ports.ProductGate) *Repository {
	return &Repository{catalog: catalog, orders: map[int64]*domain.Order{}}
}

// Create runs the per-item validate-snapshot-decrement loop. The running
// reservation map makes a duplicated product id in one request see the stock
// already consumed by earlier lines. Stock decrements are applied only after
// every line clears validation, so a failing line leaves nothing behind.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if r.catalog == nil {
		return nil, errors.New("order repository has no catalog gate")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	reserved := map[int64]int32{}
	clone := *order
	clone.Items = make([]domain.Item, len(order.Items))
	copy(clone.Items, order.Items)

	total := decimal.Zero
	for i := range clone.Items {
		item := &clone.Items[i]
		info, err := r.catalog.ProductForOrder(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d", ports.ErrProductNotFound, item.ProductID)
		}
		if !info.Available {
			return nil, fmt.Errorf("%w: product %d", ports.ErrProductUnavailable, item.ProductID)
		}
		if info.Stock-reserved[item.ProductID] < item.Quantity {
			return nil, fmt.Errorf("%w: product %d", ports.ErrInsufficientStock, item.ProductID)
		}
		reserved[item.ProductID] += item.Quantity
		item.Price = info.Price
		total = total.Add(item.Subtotal())
	}

	for productID, quantity := range reserved {
		if err := r.catalog.AdjustStock(ctx, productID, -quantity); err != nil {
			// Validation already passed under the lock; an adjust failure here
			// means the gate itself is broken. Roll back what was applied.
			r.restore(ctx, reserved, productID)
			return nil, err
		}
	}

	now := time.Now()
	r.nextID++
	clone.ID = r.nextID
	clone.Status = domain.StatusPending
	clone.TotalAmount = total
	clone.CreatedAt = now
	clone.UpdatedAt = now
	for i := range clone.Items {
		r.nextItem++
		clone.Items[i].ID = r.nextItem
		clone.Items[i].OrderID = clone.ID
		clone.Items[i].CreatedAt = now
	}
	r.orders[clone.ID] = &clone
	saved := cloneOrder(&clone)
	return saved, nil
}

// restore undoes stock decrements already applied when a later adjust fails.
// stopAt is the product whose adjustment failed and is skipped.
func (r *Repository) restore(ctx context.Context, reserved map[int64]int32, stopAt int64) {
	for productID, quantity := range reserved {
		if productID == stopAt {
			continue
		}
		_ = r.catalog.AdjustStock(ctx, productID, quantity)
	}
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.UserID != 0 && order.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		matched = append(matched, cloneOrder(order))
	}
	// Newest first, same as the persistent store.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, filter.Offset, filter.Limit), nil
}

func (r *Repository) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	existing.Status = order.Status
	existing.DeliveryAddress = order.DeliveryAddress
	existing.Phone = order.Phone
	existing.Notes = order.Notes
	existing.UpdatedAt = time.Now()
	return cloneOrder(existing), nil
}

// Cancel restores stock for every line and marks the order cancelled. A line
// whose product no longer exists is skipped; the restock is best-effort.
func (r *Repository) Cancel(ctx context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	for _, item := range order.Items {
		if _, err := r.catalog.ProductForOrder(ctx, item.ProductID); err != nil {
			continue
		}
		_ = r.catalog.AdjustStock(ctx, item.ProductID, item.Quantity)
	}
	order.UpdatedAt = time.Now()
	return cloneOrder(order), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]domain.Item, len(order.Items))
	copy(clone.Items, order.Items)
	return &clone
}

func paginate(orders []*domain.Order, offset, limit int) []*domain.Order {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(orders) {
		return []*domain.Order{}
	}
	orders = orders[offset:]
	if limit > 0 && limit < len(orders) {
		orders = orders[:limit]
	}
	return orders
}
