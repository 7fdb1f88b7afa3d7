package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyProductName  = errors.New("product name is required")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrNegativeStock     = errors.New("stock quantity cannot be negative")
	ErrMissingCategoryID = errors.New("category id is required")
)

// Product is one sellable catalog entry. StockQuantity is mutated by the
// order engine as a side effect of order lifecycle events; everything else
// is owned here.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	ImageURL      string
	IsAvailable   bool
	StockQuantity int32
	CategoryID    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct validates and constructs a product.
func NewProduct(name, description string, price decimal.Decimal, imageURL string, available bool, stock int32, categoryID int64) (*Product, error) {
	product := &Product{
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
		IsAvailable: available,
	}
	if err := product.SetName(name); err != nil {
		return nil, err
	}
	if err := product.SetPrice(price); err != nil {
		return nil, err
	}
	if err := product.SetStock(stock); err != nil {
		return nil, err
	}
	if err := product.SetCategory(categoryID); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *Product) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyProductName
	}
	p.Name = name
	return nil
}

func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPrice
	}
	p.Price = price
	return nil
}

func (p *Product) SetStock(stock int32) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.StockQuantity = stock
	return nil
}

func (p *Product) SetCategory(categoryID int64) error {
	if categoryID <= 0 {
		return ErrMissingCategoryID
	}
	p.CategoryID = categoryID
	return nil
}

// Validate re-applies core invariants for persistence.
func (p *Product) Validate() error {
	if err := p.SetName(p.Name); err != nil {
		return err
	}
	if err := p.SetPrice(p.Price); err != nil {
		return err
	}
	if err := p.SetStock(p.StockQuantity); err != nil {
		return err
	}
	return p.SetCategory(p.CategoryID)
}
