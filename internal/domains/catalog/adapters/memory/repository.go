package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/beandock/coffeeshop-api/internal/domains/catalog/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/catalog/ports"
	ordersports "github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
)

var (
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
	_ ports.ProductRepository  = (*ProductRepository)(nil)
	_ ordersports.ProductGate  = (*ProductRepository)(nil)
)

// CategoryRepository is an in-memory category persistence adapter.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[int64]*domain.Category
	nextID     int64
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: map[int64]*domain.Category{}}
}

func (r *CategoryRepository) Save(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *category
	now := time.Now()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.categories[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, ports.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *CategoryRepository) GetByName(_ context.Context, name string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, category := range r.categories {
		if category.Name == name {
			clone := *category
			return &clone, nil
		}
	}
	return nil, ports.ErrCategoryNotFound
}

func (r *CategoryRepository) List(_ context.Context, page ports.Page) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return slicePage(list, page.Offset, page.Limit), nil
}

func (r *CategoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ports.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

// ProductRepository is an in-memory product persistence adapter. It doubles
// as the order engine's product gate in the no-database fallback.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: map[int64]*domain.Product{}}
}

func (r *ProductRepository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *product
	now := time.Now()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.products[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *ProductRepository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *ProductRepository) List(_ context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		switch {
		case search != "":
			if !strings.Contains(strings.ToLower(product.Name), search) {
				continue
			}
		case filter.CategoryID != 0:
			if product.CategoryID != filter.CategoryID {
				continue
			}
		case filter.AvailableOnly:
			if !product.IsAvailable {
				continue
			}
		}
		clone := *product
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return slicePage(list, filter.Offset, filter.Limit), nil
}

func (r *ProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// ProductForOrder returns the price/availability/stock view the order engine
// validates against.
func (r *ProductRepository) ProductForOrder(_ context.Context, id int64) (ordersports.ProductInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return ordersports.ProductInfo{}, ports.ErrProductNotFound
	}
	return ordersports.ProductInfo{
		ID:        product.ID,
		Price:     product.Price,
		Available: product.IsAvailable,
		Stock:     product.StockQuantity,
	}, nil
}

// AdjustStock applies a signed stock delta on behalf of the order engine.
func (r *ProductRepository) AdjustStock(_ context.Context, id int64, delta int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrProductNotFound
	}
	if product.StockQuantity+delta < 0 {
		return errors.New("stock adjustment below zero")
	}
	product.StockQuantity += delta
	product.UpdatedAt = time.Now()
	return nil
}

func slicePage[T any](list []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
