package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the PostgreSQL order engine. Create and Cancel run inside a
// single transaction and take row locks on the product rows they touch, so
// the stock check-then-decrement sequence cannot lose updates under
// concurrent placement.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID              int64           `gorm:"primaryKey;column:id"`
	UserID          int64           `gorm:"column:user_id;index"`
	Status          string          `gorm:"column:status;type:varchar(32);index"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)"`
	DeliveryAddress string          `gorm:"column:delivery_address"`
	Phone           string          `gorm:"column:phone"`
	Notes           string          `gorm:"column:notes"`
	CreatedAt       time.Time       `gorm:"column:created_at;index"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	ProductID int64           `gorm:"column:product_id;index"`
	Quantity  int32           `gorm:"column:quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// productRow is the minimal projection of the catalog's products table the
// engine reads and whose stock_quantity it mutates.
type productRow struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	IsAvailable   bool            `gorm:"column:is_available"`
	StockQuantity int32           `gorm:"column:stock_quantity"`
}

func (productRow) TableName() string { return "products" }

// Create validates items in list order inside one transaction. Each product
// row is locked FOR UPDATE before the stock check; the decrement happens
// immediately after, so a product repeated within the request sees its own
// earlier consumption. Any failure rolls everything back.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	var createdID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]orderItemRecord, 0, len(order.Items))
		for _, item := range order.Items {
			var product productRow
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ports.ErrProductNotFound, item.ProductID)
				}
				return err
			}
			if !product.IsAvailable {
				return fmt.Errorf("%w: product %d", ports.ErrProductUnavailable, item.ProductID)
			}
			if product.StockQuantity < item.Quantity {
				return fmt.Errorf("%w: product %d", ports.ErrInsufficientStock, item.ProductID)
			}
			if err := tx.Model(&productRow{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error; err != nil {
				return err
			}
			items = append(items, orderItemRecord{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt32(item.Quantity)))
		}

		record := orderRecord{
			UserID:          order.UserID,
			Status:          string(domain.StatusPending),
			TotalAmount:     total,
			DeliveryAddress: order.DeliveryAddress,
			Phone:           order.Phone,
			Notes:           order.Notes,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = record.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		createdID = record.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, createdID)
}

// GetByID fetches an order with its line items.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&items, "order_id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomain(record, items), nil
}

// List returns orders matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var records []orderRecord
	if err := query.Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for _, record := range records {
		var items []orderItemRecord
		if err := r.db.WithContext(ctx).
			Order("id").
			Find(&items, "order_id = ?", record.ID).Error; err != nil {
			return nil, err
		}
		orders = append(orders, toDomain(record, items))
	}
	return orders, nil
}

// Update persists status and shipping fields. Line items are immutable.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":           string(order.Status),
			"delivery_address": order.DeliveryAddress,
			"phone":            order.Phone,
			"notes":            order.Notes,
			"updated_at":       gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, order.ID)
}

// Cancel locks the order row, restores stock for every surviving product, and
// flips the status, all in one transaction. A partial restore is never left
// behind: any failure rolls the whole unit back. Restocking a line whose
// product was deleted is skipped, matching the documented best-effort rule.
func (r *Repository) Cancel(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record orderRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		if domain.Status(record.Status).IsTerminal() {
			return domain.ErrNotCancellable
		}
		var items []orderItemRecord
		if err := tx.Find(&items, "order_id = ?", id).Error; err != nil {
			return err
		}
		for _, item := range items {
			result := tx.Model(&productRow{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			// RowsAffected == 0 means the product was deleted after the order
			// was placed; the restore for that line is skipped.
		}
		return tx.Model(&orderRecord{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":     string(domain.StatusCancelled),
				"updated_at": gorm.Expr("NOW()"),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the order and its line items without restocking.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&orderRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return tx.Delete(&orderItemRecord{}, "order_id = ?", id).Error
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toDomain(record orderRecord, items []orderItemRecord) *domain.Order {
	order := &domain.Order{
		ID:              record.ID,
		UserID:          record.UserID,
		Status:          domain.Status(record.Status),
		TotalAmount:     record.TotalAmount,
		DeliveryAddress: record.DeliveryAddress,
		Phone:           record.Phone,
		Notes:           record.Notes,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
	order.Items = make([]domain.Item, 0, len(items))
	for _, item := range items {
		order.Items = append(order.Items, domain.Item{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			CreatedAt: item.CreatedAt,
		})
	}
	return order
}
