package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/beandock/coffeeshop-api/internal/domains/catalog/domain"
)

// UpdateCategoryInput is a partial patch; nil fields are left untouched.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// UpdateProductInput is a partial patch; nil fields are left untouched.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	ImageURL      *string
	IsAvailable   *bool
	StockQuantity *int32
	CategoryID    *int64
}

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, page Page) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, patch UpdateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
