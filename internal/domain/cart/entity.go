// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// Cart is a user's shopping cart. A user has at most one active cart
// at a time; checkout archives it. Uniqueness of the active cart is
// enforced by a partial unique index on (user_id) where is_active.
type Cart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Items []Item `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// Item is one line of a cart. Lines are distinct per (cart, product,
// color); re-adding the same combination increments quantity.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_line" json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_line" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Color     string    `gorm:"size:100;not null;default:'Default';uniqueIndex:idx_cart_line" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides
func (Cart) TableName() string { return "carts" }
func (Item) TableName() string { return "cart_items" }
