package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&categoryRecord{},
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID             int64     `gorm:"primaryKey;column:id"`
	Email          string    `gorm:"column:email;uniqueIndex"`
	Username       string    `gorm:"column:username;uniqueIndex"`
	HashedPassword string    `gorm:"column:hashed_password"`
	FullName       string    `gorm:"column:full_name"`
	Phone          string    `gorm:"column:phone"`
	Address        string    `gorm:"column:address"`
	IsActive       bool      `gorm:"column:is_active"`
	IsAdmin        bool      `gorm:"column:is_admin"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:512"`
	UserID    int64     `gorm:"column:user_id;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Category schema mirrors the catalog Postgres adapter.
type categoryRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description"`
	ImageURL    string    `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	Name          string          `gorm:"column:name;index"`
	Description   string          `gorm:"column:description"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	ImageURL      string          `gorm:"column:image_url"`
	CategoryID    int64           `gorm:"column:category_id;index"`
	StockQuantity int32           `gorm:"column:stock_quantity"`
	IsAvailable   bool            `gorm:"column:is_available;index"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID              int64           `gorm:"primaryKey;column:id"`
	UserID          int64           `gorm:"column:user_id;index:idx_orders_user_status"`
	Status          string          `gorm:"column:status;type:varchar(32);index:idx_orders_user_status"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)"`
	DeliveryAddress string          `gorm:"column:delivery_address"`
	Phone           string          `gorm:"column:phone"`
	Notes           string          `gorm:"column:notes"`
	CreatedAt       time.Time       `gorm:"column:created_at;index"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order item schema mirrors the orders Postgres adapter.
type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	ProductID int64           `gorm:"column:product_id;index"`
	Quantity  int32           `gorm:"column:quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (orderItemRecord) TableName() string { return "order_items" }
