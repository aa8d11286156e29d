// internal/domain/product/view.go
package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary is the flat category shape embedded in product views.
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ImageView is a single gallery image with its media path resolved to
// an absolute URL.
type ImageView struct {
	ID       uint    `json:"id"`
	Image    *string `json:"image"`
	Color    string  `json:"color"`
	AltText  string  `json:"alt_text"`
	Ordering int     `json:"ordering"`
}

// View is the read shape for products. Discount keys are hoisted to
// the top level and always present; both are null when the product has
// no active discount.
type View struct {
	ID              uint             `json:"id"`
	Category        CategorySummary  `json:"category"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	DeliveryCharges decimal.Decimal  `json:"delivery_charges"`
	SKU             string           `json:"sku"`
	Image           *string          `json:"image"`
	Stock           int              `json:"stock"`
	IsActive        bool             `json:"is_active"`
	DiscountPrice   *decimal.Decimal `json:"discount_price"`
	OriginalPrice   *decimal.Decimal `json:"original_price"`
	Images          []ImageView      `json:"images"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ResolveMediaURL turns a stored media path into an absolute URL.
// Paths that are already absolute URLs pass through untouched; empty
// paths resolve to nil. baseURL is the scheme+host of the current
// request, e.g. "https://shop.example.com".
func ResolveMediaURL(baseURL, mediaPrefix, path string) *string {
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return &path
	}
	rel := "/" + strings.TrimPrefix(path, "/")
	if !strings.HasPrefix(rel, mediaPrefix) {
		rel = mediaPrefix + strings.TrimPrefix(path, "/")
	}
	url := strings.TrimSuffix(baseURL, "/") + rel
	return &url
}

// BuildView assembles the read shape for a product. The product must
// be loaded with its category, ordered images, and (active) discount.
func BuildView(p *Product, baseURL, mediaPrefix string) View {
	v := View{
		ID: p.ID,
		Category: CategorySummary{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		},
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		Price:           p.Price,
		DeliveryCharges: p.DeliveryCharges,
		SKU:             p.SKU,
		Image:           ResolveMediaURL(baseURL, mediaPrefix, p.Image),
		Stock:           p.Stock,
		IsActive:        p.IsActive,
		Images:          make([]ImageView, 0, len(p.Images)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.HasActiveDiscount() {
		dp := p.Discount.DiscountPrice
		op := p.Discount.OriginalPrice
		v.DiscountPrice = &dp
		v.OriginalPrice = &op
	}
	for _, img := range p.Images {
		v.Images = append(v.Images, ImageView{
			ID:       img.ID,
			Image:    ResolveMediaURL(baseURL, mediaPrefix, img.Image),
			Color:    img.Color,
			AltText:  img.AltText,
			Ordering: img.Ordering,
		})
	}
	return v
}

// BuildViews maps BuildView over a slice.
func BuildViews(products []Product, baseURL, mediaPrefix string) []View {
	views := make([]View, 0, len(products))
	for i := range products {
		views = append(views, BuildView(&products[i], baseURL, mediaPrefix))
	}
	return views
}
