package ports

import (
	"context"

	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
)

// ItemInput is one requested (product, quantity) pair.
type ItemInput struct {
	ProductID int64
	Quantity  int32
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	UserID          int64
	DeliveryAddress string
	Phone           string
	Notes           string
	Items           []ItemInput
}

// UpdateOrderInput is a partial patch; nil fields are left untouched. Status
// changes are admin-only, enforced by the HTTP boundary.
type UpdateOrderInput struct {
	Status          *domain.Status
	DeliveryAddress *string
	Phone           *string
	Notes           *string
}

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, patch UpdateOrderInput) (*domain.Order, error)
	CancelOrder(ctx context.Context, id int64) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// WorkflowOrchestrator optionally routes order placement through durable
// workflow execution. Implementations fall back to the service when no
// workflow engine is configured.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
}
