package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidStatus    = errors.New("order status is invalid")
	ErrEmptyAddress     = errors.New("delivery address is required")
	ErrEmptyPhone       = errors.New("contact phone is required")
	ErrNoItems          = errors.New("order requires at least one item")
	ErrNotCancellable   = errors.New("order can no longer be cancelled")
	ErrTerminalStatus   = errors.New("order status is terminal")
)

// IsValid reports whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Item is one product line within an order. Price is the unit price captured
// at order time and never follows later catalog changes.
type Item struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int32
	Price     decimal.Decimal
	CreatedAt time.Time
}

// Validate enforces line item invariants.
func (i Item) Validate() error {
	if i.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Subtotal returns price times quantity for the line.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt32(i.Quantity))
}

// Order models one purchase transaction together with its line items.
type Order struct {
	ID              int64
	UserID          int64
	Status          Status
	TotalAmount     decimal.Decimal
	DeliveryAddress string
	Phone           string
	Notes           string
	Items           []Item
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder validates and constructs a draft order in pending status. Item
// prices and the total are filled in by the persistence engine from the
// catalog at creation time.
func NewOrder(userID int64, address, phone, notes string, items []Item) (*Order, error) {
	order := &Order{
		UserID:          userID,
		Status:          StatusPending,
		DeliveryAddress: strings.TrimSpace(address),
		Phone:           strings.TrimSpace(phone),
		Notes:           strings.TrimSpace(notes),
		Items:           items,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.DeliveryAddress == "" {
		return ErrEmptyAddress
	}
	if o.Phone == "" {
		return ErrEmptyPhone
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	if !o.Status.IsValid() {
		return ErrInvalidStatus
	}
	for _, item := range o.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SetStatus moves the order to a new status. Beyond rejecting unknown values
// it only blocks leaving a terminal state; no transition graph is enforced.
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if o.Status.IsTerminal() && status != o.Status {
		return ErrTerminalStatus
	}
	o.Status = status
	return nil
}

// Cancel moves the order to cancelled unless it already reached a terminal
// status.
func (o *Order) Cancel() error {
	if o.Status.IsTerminal() {
		return ErrNotCancellable
	}
	o.Status = StatusCancelled
	return nil
}

// ComputedTotal sums the captured line subtotals.
func (o *Order) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
