package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
	// PlaceOrderActivityName executes the transactional placement inside the worker.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
)

// OrderPlacementWorkflowInput captures the payload required to place an order.
type OrderPlacementWorkflowInput struct {
	Command ports.CreateOrderInput
	TraceID string
}

// OrderPlacementWorkflow runs the placement activity with retries limited to
// transient failures. Catalog rejections are deterministic business-rule
// outcomes, so the activity marks them non-retryable.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "userId", input.Command.UserID)...)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				OrderRejectedErrorType,
				OrderInvalidErrorType,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var order domain.Order
	if err := workflow.ExecuteActivity(ctx, PlaceOrderActivityName, input.Command).Get(ctx, &order); err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "userId", input.Command.UserID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return &order, nil
}

const (
	// OrderRejectedErrorType tags catalog rejections (missing, unavailable, out of stock).
	OrderRejectedErrorType = "OrderRejected"
	// OrderInvalidErrorType tags requests that violate order invariants.
	OrderInvalidErrorType = "OrderInvalid"
)

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
