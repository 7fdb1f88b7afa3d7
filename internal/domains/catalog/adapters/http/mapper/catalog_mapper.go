package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/beandock/coffeeshop-api/internal/domains/catalog/domain"
	catalogports "github.com/beandock/coffeeshop-api/internal/domains/catalog/ports"
)

// Category is the HTTP representation of a menu category.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCategoryRequest captures the inbound category payload.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// UpdateCategoryRequest captures a partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// Product is the HTTP representation of a menu product. Prices render as
// decimal strings to avoid float rounding on the wire.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	IsAvailable   bool            `json:"isAvailable"`
	StockQuantity int32           `json:"stockQuantity"`
	CategoryID    int64           `json:"categoryId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CreateProductRequest captures the inbound product payload.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	IsAvailable   *bool           `json:"isAvailable,omitempty"`
	StockQuantity int32           `json:"stockQuantity"`
	CategoryID    int64           `json:"categoryId" binding:"required"`
}

// UpdateProductRequest captures a partial product update.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	ImageURL      *string          `json:"imageUrl,omitempty"`
	IsAvailable   *bool            `json:"isAvailable,omitempty"`
	StockQuantity *int32           `json:"stockQuantity,omitempty"`
	CategoryID    *int64           `json:"categoryId,omitempty"`
}

// ToDomainCategory converts an inbound payload into a validated category.
func ToDomainCategory(req CreateCategoryRequest) (*domain.Category, error) {
	return domain.NewCategory(req.Name, req.Description, req.ImageURL)
}

// ToCategoryPatch converts an update payload into the service input.
func ToCategoryPatch(req UpdateCategoryRequest) catalogports.UpdateCategoryInput {
	return catalogports.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
}

// ToDomainProduct converts an inbound payload into a validated product.
// New products default to available unless the payload says otherwise.
func ToDomainProduct(req CreateProductRequest) (*domain.Product, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return domain.NewProduct(req.Name, req.Description, req.Price, req.ImageURL, available, req.StockQuantity, req.CategoryID)
}

// ToProductPatch converts an update payload into the service input.
func ToProductPatch(req UpdateProductRequest) catalogports.UpdateProductInput {
	return catalogports.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		IsAvailable:   req.IsAvailable,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
	}
}

// FromDomainCategory converts a domain category to transport form.
func FromDomainCategory(category *domain.Category) Category {
	if category == nil {
		return Category{}
	}
	return Category{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		ImageURL:    category.ImageURL,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// FromDomainCategories converts a slice of domain categories.
func FromDomainCategories(categories []*domain.Category) []Category {
	result := make([]Category, 0, len(categories))
	for _, category := range categories {
		result = append(result, FromDomainCategory(category))
	}
	return result
}

// FromDomainProduct converts a domain product to transport form.
func FromDomainProduct(product *domain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		ImageURL:      product.ImageURL,
		IsAvailable:   product.IsAvailable,
		StockQuantity: product.StockQuantity,
		CategoryID:    product.CategoryID,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

// FromDomainProducts converts a slice of domain products.
func FromDomainProducts(products []*domain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, FromDomainProduct(product))
	}
	return result
}
