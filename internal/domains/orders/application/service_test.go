package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
)

type fakeOrderRepo struct {
	orders    map[int64]*domain.Order
	nextID    int64
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*domain.Order{}, nextID: 1}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	clone := *order
	clone.ID = f.nextID
	f.nextID++
	for i := range clone.Items {
		clone.Items[i].Price = decimal.RequireFromString("3.00")
	}
	clone.TotalAmount = clone.ComputedTotal()
	f.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	if o, ok := f.orders[id]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeOrderRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	var list []*domain.Order
	for _, o := range f.orders {
		if filter.UserID != 0 && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		clone := *o
		list = append(list, &clone)
	}
	return list, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if _, ok := f.orders[order.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	f.orders[order.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeOrderRepo) Cancel(_ context.Context, id int64) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func validInput() ports.CreateOrderInput {
	return ports.CreateOrderInput{
		UserID:          3,
		DeliveryAddress: "12 Bean St",
		Phone:           "+48 123 456 789",
		Items:           []ports.ItemInput{{ProductID: 1, Quantity: 2}},
	}
}

func TestCreateOrder_PersistsDraft(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)

	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, order.Status)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("6.00")))
}

func TestCreateOrder_InvalidInput(t *testing.T) {
	svc := NewService(newFakeOrderRepo())

	input := validInput()
	input.Items = nil
	_, err := svc.CreateOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoItems)

	input = validInput()
	input.Items[0].Quantity = 0
	_, err = svc.CreateOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateOrder_EngineRejectionWrapped(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.createErr = ports.ErrInsufficientStock
	svc := NewService(repo)

	_, err := svc.CreateOrder(context.Background(), validInput())
	require.ErrorIs(t, err, ErrRejected)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
}

func TestUpdateOrder_PatchSemantics(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)
	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)

	status := domain.StatusConfirmed
	notes := "ring the bell"
	updated, err := svc.UpdateOrder(context.Background(), order.ID, ports.UpdateOrderInput{Status: &status, Notes: &notes})
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, updated.Status)
	require.Equal(t, "ring the bell", updated.Notes)
	require.Equal(t, order.DeliveryAddress, updated.DeliveryAddress)

	bad := domain.Status("unknown")
	_, err = svc.UpdateOrder(context.Background(), order.ID, ports.UpdateOrderInput{Status: &bad})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateOrder_TerminalStatusBlocked(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)
	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)

	delivered := domain.StatusDelivered
	_, err = svc.UpdateOrder(context.Background(), order.ID, ports.UpdateOrderInput{Status: &delivered})
	require.NoError(t, err)

	pending := domain.StatusPending
	_, err = svc.UpdateOrder(context.Background(), order.ID, ports.UpdateOrderInput{Status: &pending})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrTerminalStatus)
}

func TestCancelOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)
	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)

	cancelled, err := svc.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Status)

	_, err = svc.CancelOrder(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrNotCancellable)
}

func TestListOrders_DefaultLimit(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)
	_, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)

	orders, err := svc.ListOrders(context.Background(), ports.ListFilter{UserID: 3})
	require.NoError(t, err)
	require.Len(t, orders, 1)

	orders, err = svc.ListOrders(context.Background(), ports.ListFilter{UserID: 99})
	require.NoError(t, err)
	require.Empty(t, orders)
}
