package ports

import (
	"context"
	"errors"

	"github.com/beandock/coffeeshop-api/internal/domains/catalog/domain"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNameTaken = errors.New("category name already exists")
)

// ProductFilter narrows product listings. Search takes precedence over
// CategoryID, which takes precedence over AvailableOnly, mirroring the API's
// filter resolution order.
type ProductFilter struct {
	CategoryID    int64
	AvailableOnly bool
	Search        string
	Offset        int
	Limit         int
}

// Page bounds category and user-style listings.
type Page struct {
	Offset int
	Limit  int
}

// CategoryRepository persists menu categories.
type CategoryRepository interface {
	Save(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context, page Page) ([]*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
