package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/beandock/coffeeshop-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/beandock/coffeeshop-api/internal/domains/catalog/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
)

type fixture struct {
	repo     *Repository
	products *catalogmemory.ProductRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := catalogmemory.NewProductRepository()
	return &fixture{repo: NewRepository(products), products: products}
}

func (f *fixture) addProduct(t *testing.T, name, price string, stock int32, available bool) *catalogdomain.Product {
	t.Helper()
	product, err := catalogdomain.NewProduct(name, "", decimal.RequireFromString(price), "", available, stock, 1)
	require.NoError(t, err)
	saved, err := f.products.Save(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func (f *fixture) stockOf(t *testing.T, id int64) int32 {
	t.Helper()
	info, err := f.products.ProductForOrder(context.Background(), id)
	require.NoError(t, err)
	return info.Stock
}

func draft(userID int64, items ...domain.Item) *domain.Order {
	order, err := domain.NewOrder(userID, "12 Bean St", "+48 123 456 789", "", items)
	if err != nil {
		panic(err)
	}
	return order
}

func TestCreate_SnapshotsPriceAndComputesTotal(t *testing.T) {
	f := newFixture(t)
	latte := f.addProduct(t, "Latte", "4.00", 10, true)
	espresso := f.addProduct(t, "Espresso", "2.50", 10, true)

	order, err := f.repo.Create(context.Background(), draft(1,
		domain.Item{ProductID: latte.ID, Quantity: 2},
		domain.Item{ProductID: espresso.ID, Quantity: 1},
	))
	require.NoError(t, err)

	require.Equal(t, domain.StatusPending, order.Status)
	require.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("4.00")))
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("10.50")))
	require.Equal(t, int32(8), f.stockOf(t, latte.ID))
	require.Equal(t, int32(9), f.stockOf(t, espresso.ID))

	// Later catalog price changes must not touch the captured snapshot.
	newPrice := decimal.RequireFromString("9.99")
	latte.Price = newPrice
	_, err = f.products.Save(context.Background(), latte)
	require.NoError(t, err)
	reloaded, err := f.repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.True(t, reloaded.Items[0].Price.Equal(decimal.RequireFromString("4.00")))
}

func TestCreate_AtomicOnFailure(t *testing.T) {
	f := newFixture(t)
	latte := f.addProduct(t, "Latte", "4.00", 10, true)
	soldOut := f.addProduct(t, "Flat White", "4.20", 1, true)

	_, err := f.repo.Create(context.Background(), draft(1,
		domain.Item{ProductID: latte.ID, Quantity: 2},
		domain.Item{ProductID: soldOut.ID, Quantity: 5},
	))
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	// The first line must not have consumed stock.
	require.Equal(t, int32(10), f.stockOf(t, latte.ID))
	require.Equal(t, int32(1), f.stockOf(t, soldOut.ID))

	orders, err := f.repo.List(context.Background(), ports.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreate_ProductChecks(t *testing.T) {
	f := newFixture(t)
	hidden := f.addProduct(t, "Seasonal", "5.00", 10, false)

	_, err := f.repo.Create(context.Background(), draft(1, domain.Item{ProductID: 999, Quantity: 1}))
	require.ErrorIs(t, err, ports.ErrProductNotFound)

	_, err = f.repo.Create(context.Background(), draft(1, domain.Item{ProductID: hidden.ID, Quantity: 1}))
	require.ErrorIs(t, err, ports.ErrProductUnavailable)
}

func TestCreate_DuplicateProductSeesEarlierReservation(t *testing.T) {
	f := newFixture(t)
	latte := f.addProduct(t, "Latte", "4.00", 3, true)

	// 2 + 2 exceeds the stock of 3 even though each line alone fits.
	_, err := f.repo.Create(context.Background(), draft(1,
		domain.Item{ProductID: latte.ID, Quantity: 2},
		domain.Item{ProductID: latte.ID, Quantity: 2},
	))
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	require.Equal(t, int32(3), f.stockOf(t, latte.ID))

	// 2 + 1 fits exactly.
	order, err := f.repo.Create(context.Background(), draft(1,
		domain.Item{ProductID: latte.ID, Quantity: 2},
		domain.Item{ProductID: latte.ID, Quantity: 1},
	))
	require.NoError(t, err)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("12.00")))
	require.Equal(t, int32(0), f.stockOf(t, latte.ID))
}

func TestCancel_RestoresStock(t *testing.T) {
	f := newFixture(t)
	latte := f.addProduct(t, "Latte", "4.00", 10, true)

	order, err := f.repo.Create(context.Background(), draft(1, domain.Item{ProductID: latte.ID, Quantity: 4}))
	require.NoError(t, err)
	require.Equal(t, int32(6), f.stockOf(t, latte.ID))

	cancelled, err := f.repo.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.Equal(t, int32(10), f.stockOf(t, latte.ID))
}

func TestCancel_SkipsDeletedProducts(t *testing.T) {
	f := newFixture(t)
	latte := f.addProduct(t, "Latte", "4.00", 10, true)
	espresso := f.addProduct(t, "Espresso", "2.50", 10, true)

	order, err := f.repo.Create(context.Background(), draft(1,
		domain.Item{ProductID: latte.ID, Quantity: 2},
		domain.Item{ProductID: espresso.ID, Quantity: 2},
	))
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(context.Background(), latte.ID))

	cancelled, err := f.repo.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.Equal(t, int32(10), f.stockOf(t, espresso.ID))
}

func TestCancel_TerminalStatesBlocked(t *testing.T) {
	f := newFixture(t)
	latte := f.addProduct(t, "Latte", "4.00", 10, true)

	order, err := f.repo.Create(context.Background(), draft(1, domain.Item{ProductID: latte.ID, Quantity: 1}))
	require.NoError(t, err)

	_, err = f.repo.Cancel(context.Background(), order.ID)
	require.NoError(t, err)

	// Second cancel hits a terminal order and must not restock again.
	_, err = f.repo.Cancel(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrNotCancellable)
	require.Equal(t, int32(10), f.stockOf(t, latte.ID))
}

func TestCreate_ConcurrentExhaustion(t *testing.T) {
	f := newFixture(t)
	latte := f.addProduct(t, "Latte", "4.00", 10, true)

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.repo.Create(context.Background(), draft(1, domain.Item{ProductID: latte.ID, Quantity: 1}))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ports.ErrInsufficientStock)
		rejected++
	}
	require.Equal(t, 10, succeeded)
	require.Equal(t, workers-10, rejected)
	require.Equal(t, int32(0), f.stockOf(t, latte.ID))
}

func TestListAndPagination(t *testing.T) {
	f := newFixture(t)
	latte := f.addProduct(t, "Latte", "4.00", 100, true)

	for i := 0; i < 5; i++ {
		userID := int64(1)
		if i%2 == 1 {
			userID = 2
		}
		_, err := f.repo.Create(context.Background(), draft(userID, domain.Item{ProductID: latte.ID, Quantity: 1}))
		require.NoError(t, err)
	}

	mine, err := f.repo.List(context.Background(), ports.ListFilter{UserID: 1})
	require.NoError(t, err)
	require.Len(t, mine, 3)
	require.Equal(t, []int64{5, 3, 1}, orderIDs(mine))

	page, err := f.repo.List(context.Background(), ports.ListFilter{Offset: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []int64{4, 3}, orderIDs(page))
}

func orderIDs(orders []*domain.Order) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	return ids
}
