package application

import (
	"context"

	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
)

// Service orchestrates order use cases over the transactional repository.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateOrder validates the request and hands the draft to the engine, which
// snapshots prices, reserves stock, and persists everything atomically.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	items := make([]domain.Item, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, domain.Item{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	order, err := domain.NewOrder(input.UserID, input.DeliveryAddress, input.Phone, input.Notes, items)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.repo.List(ctx, filter)
}

// UpdateOrder applies only the fields present in the patch.
func (s *Service) UpdateOrder(ctx context.Context, id int64, patch ports.UpdateOrderInput) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil {
		if err := order.SetStatus(*patch.Status); err != nil {
			return nil, mapError(err)
		}
	}
	if patch.DeliveryAddress != nil {
		order.DeliveryAddress = *patch.DeliveryAddress
	}
	if patch.Phone != nil {
		order.Phone = *patch.Phone
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, order)
}

// CancelOrder restores stock and marks the order cancelled in one atomic unit.
func (s *Service) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	cancelled, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return cancelled, nil
}

// DeleteOrder removes the order without restocking. Admin-only bookkeeping
// removal, gated at the boundary.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

const defaultListLimit = 100

var _ ports.Service = (*Service)(nil)
