package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrProductNotFound signals a requested product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductUnavailable signals the product is not marked available.
	ErrProductUnavailable = errors.New("product is unavailable")
	// ErrInsufficientStock signals the requested quantity exceeds current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ListFilter narrows order listings. A zero UserID or empty Status means no
// filtering on that field.
type ListFilter struct {
	UserID int64
	Status domain.Status
	Offset int
	Limit  int
}

// Repository is the transactional order engine. Create and Cancel must apply
// their order and stock mutations as a single atomic unit.
type Repository interface {
	// Create validates each draft item against the catalog in list order,
	// snapshots unit prices, decrements stock, and persists the order with its
	// line items. Any failing item aborts the whole operation.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, error)
	// Update persists status and shipping fields of an already-loaded order.
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// Cancel restores stock for every line item and marks the order cancelled.
	// Restocking is best-effort when a referenced product no longer exists.
	Cancel(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

// ProductInfo is the catalog view the order engine validates against.
type ProductInfo struct {
	ID        int64
	Price     decimal.Decimal
	Available bool
	Stock     int32
}

// ProductGate exposes the slice of the catalog the in-memory order engine
// needs: a read of price/availability/stock and a stock adjustment. The
// postgres engine bypasses it and locks product rows directly.
type ProductGate interface {
	ProductForOrder(ctx context.Context, id int64) (ProductInfo, error)
	AdjustStock(ctx context.Context, id int64, delta int32) error
}
