// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category represents product categories. Categories form a two-level
// tree: parents have no parent, children reference exactly one parent.
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:120" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Image       string         `gorm:"size:500" json:"image"`
	ParentID    *uint          `gorm:"index" json:"parent_id"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Products []Product  `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Product represents the product entity
type Product struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CategoryID      uint            `gorm:"not null;index" json:"category_id"`
	Name            string          `gorm:"not null;size:255" json:"name"`
	Slug            string          `gorm:"uniqueIndex;not null;size:260" json:"slug"`
	Description     string          `gorm:"type:text" json:"description"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	DeliveryCharges decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"delivery_charges"`
	SKU             string          `gorm:"uniqueIndex;not null;size:50" json:"sku"`
	Image           string          `gorm:"size:500" json:"image"`
	Stock           int             `gorm:"not null;default:0" json:"stock"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Category Category         `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"category"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
	Discount *ProductDiscount `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"discount,omitempty"`
}

// ProductImage represents product gallery images. Multiple images per
// product are allowed, duplicates by color included.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Image     string    `gorm:"size:500" json:"image"`
	Color     string    `gorm:"size:100;not null;default:'Default'" json:"color"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	Ordering  int       `gorm:"not null;default:0" json:"ordering"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductDiscount is the one-to-one discount row for a product.
// At most one row per product; writes go through an upsert keyed on
// product_id.
type ProductDiscount struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ProductID     uint            `gorm:"uniqueIndex;not null" json:"product_id"`
	OriginalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"original_price"`
	DiscountPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discount_price"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName overrides
func (Category) TableName() string        { return "categories" }
func (Product) TableName() string         { return "products" }
func (ProductImage) TableName() string    { return "product_images" }
func (ProductDiscount) TableName() string { return "product_discounts" }

// HasActiveDiscount reports whether an active discount row is loaded.
func (p *Product) HasActiveDiscount() bool {
	return p.Discount != nil && p.Discount.IsActive
}
