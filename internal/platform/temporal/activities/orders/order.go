package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/beandock/coffeeshop-api/internal/domains/orders/application"
	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	ordersports "github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
	orderworkflows "github.com/beandock/coffeeshop-api/internal/durable/temporal/workflows/orders"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder executes the transactional order placement and returns the
// persisted order. Deterministic rejections are converted to non-retryable
// application errors so the workflow does not retry a business-rule failure.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.CreateOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "userId", input.UserID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "userId", input.UserID, "items", len(input.Items))
	order, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "userId", input.UserID, "error", err)
		switch {
		case errors.Is(err, ordersapp.ErrRejected):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), orderworkflows.OrderRejectedErrorType, err)
		case errors.Is(err, ordersapp.ErrInvalidInput):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), orderworkflows.OrderInvalidErrorType, err)
		}
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}
