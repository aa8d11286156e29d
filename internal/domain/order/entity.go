// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/your-org/storefront-backend/internal/domain/user"
)

// Conventional order workflow values. Admin updates may store any
// status string; these are the ones the dashboard uses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Order is an immutable snapshot of a checked-out cart plus the
// shipping details captured at checkout. Only status and payment
// fields change after creation.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	CartID      uint            `gorm:"not null;index" json:"cart_id"`
	Email       string          `gorm:"not null;size:255" json:"email"`
	Phone       string          `gorm:"not null;size:30" json:"phone"`
	Address     string          `gorm:"not null;size:500" json:"address"`
	City        string          `gorm:"not null;size:100" json:"city"`
	PostalCode  string          `gorm:"not null;size:20" json:"postal_code"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status      string          `gorm:"not null;default:'pending';size:50" json:"status"`
	IsPaid      bool            `gorm:"default:false" json:"is_paid"`
	PaidAt      *time.Time      `json:"paid_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	User  user.User `gorm:"foreignKey:UserID" json:"-"`
	Items []Item    `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// Item is one order line. Product name and price are frozen at
// checkout time and never track later product edits.
type Item struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"order_id"`
	ProductID   uint            `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"not null;size:255" json:"product_name"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Color       string          `gorm:"size:100;not null;default:'Default'" json:"color"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string { return "orders" }
func (Item) TableName() string  { return "order_items" }
