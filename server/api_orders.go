package coffeeshopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/beandock/coffeeshop-api/internal/domains/orders/adapters/http/mapper"
	orderdomain "github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	orderports "github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
	apierrors "github.com/beandock/coffeeshop-api/internal/shared/errors"
)

// OrderAPI wires order endpoints to the order service and workflows.
type OrderAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /api/v1/orders
// Place a new order
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	var payload ordermapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := ordermapper.ToCreateInput(user.ID, payload)
	order, err := api.placeOrder(c, input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

func (api *OrderAPI) placeOrder(c *gin.Context, input orderports.CreateOrderInput) (*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(c.Request.Context(), input)
	}
	return api.service.CreateOrder(c.Request.Context(), input)
}

// Get /api/v1/orders
// List own orders; admins see all orders with an optional status filter
func (api *OrderAPI) ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	offset, ok := parseQueryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := parseQueryInt(c, "limit", 0)
	if !ok {
		return
	}
	filter := orderports.ListFilter{Offset: offset, Limit: limit}
	if user.IsAdmin {
		if raw := c.Query("status"); raw != "" {
			status := orderdomain.Status(raw)
			if !status.IsValid() {
				respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid status query parameter"))
				return
			}
			filter.Status = status
		}
	} else {
		filter.UserID = user.ID
	}
	orders, err := api.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /api/v1/orders/:orderId
// Fetch an order; owner or admin only
func (api *OrderAPI) GetOrder(c *gin.Context) {
	order, ok := api.loadOwnedOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Put /api/v1/orders/:orderId
// Update shipping fields; status changes are admin-only
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	order, ok := api.loadOwnedOrder(c)
	if !ok {
		return
	}
	var payload ordermapper.UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.Status != nil && !user.IsAdmin {
		respondProblem(c, apierrors.ErrForbidden.WithDetail("only administrators can change order status"))
		return
	}
	updated, err := api.service.UpdateOrder(c.Request.Context(), order.ID, ordermapper.ToUpdateInput(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(updated))
}

// Post /api/v1/orders/:orderId/cancel
// Cancel an order and restore stock; owner or admin only
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	order, ok := api.loadOwnedOrder(c)
	if !ok {
		return
	}
	cancelled, err := api.service.CancelOrder(c.Request.Context(), order.ID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(cancelled))
}

// Delete /api/v1/orders/:orderId
// Hard-delete an order without restocking (admin)
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// loadOwnedOrder fetches the order in the path and enforces the
// owner-or-admin rule.
func (api *OrderAPI) loadOwnedOrder(c *gin.Context) (*orderdomain.Order, bool) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return nil, false
	}
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return nil, false
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondOrderServiceError(c, err)
		return nil, false
	}
	if order.UserID != user.ID && !user.IsAdmin {
		respondProblem(c, apierrors.ErrForbidden.WithDetail("order belongs to another user"))
		return nil, false
	}
	return order, true
}
