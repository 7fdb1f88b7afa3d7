package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	orderports "github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
)

// OrderItemRequest is a single line of an inbound order.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int32 `json:"quantity" binding:"required"`
}

// CreateOrderRequest captures the inbound order payload.
type CreateOrderRequest struct {
	DeliveryAddress string             `json:"deliveryAddress" binding:"required"`
	Phone           string             `json:"phone" binding:"required"`
	Notes           string             `json:"notes,omitempty"`
	Items           []OrderItemRequest `json:"items" binding:"required"`
}

// UpdateOrderRequest captures a partial order update.
type UpdateOrderRequest struct {
	Status          *string `json:"status,omitempty"`
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// OrderItem is the HTTP representation of an order line. Price is the unit
// price snapshot taken at placement time.
type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Quantity  int32           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Order is the HTTP representation of an order.
type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Phone           string          `json:"phone"`
	Notes           string          `json:"notes,omitempty"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToCreateInput converts an inbound payload into the service input for the
// authenticated user.
func ToCreateInput(userID int64, req CreateOrderRequest) orderports.CreateOrderInput {
	items := make([]orderports.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderports.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return orderports.CreateOrderInput{
		UserID:          userID,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
		Items:           items,
	}
}

// ToUpdateInput converts an update payload into the service input.
func ToUpdateInput(req UpdateOrderRequest) orderports.UpdateOrderInput {
	var status *domain.Status
	if req.Status != nil {
		s := domain.Status(*req.Status)
		status = &s
	}
	return orderports.UpdateOrderInput{
		Status:          status,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
	}
}

// FromDomainOrder converts a domain order to transport form.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return Order{
		ID:              order.ID,
		UserID:          order.UserID,
		Status:          string(order.Status),
		TotalAmount:     order.TotalAmount,
		DeliveryAddress: order.DeliveryAddress,
		Phone:           order.Phone,
		Notes:           order.Notes,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// FromDomainOrders converts a slice of domain orders.
func FromDomainOrders(orders []*domain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
