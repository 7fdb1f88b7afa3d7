package application

import (
	"context"
	"errors"

	"github.com/beandock/coffeeshop-api/internal/domains/catalog/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/catalog/ports"
)

const defaultListLimit = 100

// Service orchestrates catalog use cases for categories and products.
type Service struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
}

func NewService(categories ports.CategoryRepository, products ports.ProductRepository) *Service {
	return &Service{categories: categories, products: products}
}

func (s *Service) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	if err := category.SetName(category.Name); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.categories.GetByName(ctx, category.Name); err == nil {
		return nil, ports.ErrCategoryNameTaken
	} else if !errors.Is(err, ports.ErrCategoryNotFound) {
		return nil, err
	}
	return s.categories.Save(ctx, category)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, page ports.Page) ([]*domain.Category, error) {
	if page.Limit <= 0 {
		page.Limit = defaultListLimit
	}
	return s.categories.List(ctx, page)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, patch ports.UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if err := category.SetName(*patch.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		category.ImageURL = *patch.ImageURL
	}
	return s.categories.Save(ctx, category)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.categories.GetByID(ctx, product.CategoryID); err != nil {
		return nil, err
	}
	return s.products.Save(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.products.List(ctx, filter)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, patch ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if err := product.SetName(*patch.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		if err := product.SetPrice(*patch.Price); err != nil {
			return nil, mapError(err)
		}
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	if patch.IsAvailable != nil {
		product.IsAvailable = *patch.IsAvailable
	}
	if patch.StockQuantity != nil {
		if err := product.SetStock(*patch.StockQuantity); err != nil {
			return nil, mapError(err)
		}
	}
	if patch.CategoryID != nil {
		if err := product.SetCategory(*patch.CategoryID); err != nil {
			return nil, mapError(err)
		}
		if _, err := s.categories.GetByID(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}
	return s.products.Save(ctx, product)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
