// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/your-org/storefront-backend/internal/config"
)

// ErrNotFound is returned when a product or category does not exist.
var ErrNotFound = errors.New("product not found")

// ValidationError carries a field-level failure for admin writes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: log,
	}
}

// CreateRequest is the admin payload for creating a product.
type CreateRequest struct {
	CategoryID      uint             `json:"category_id" binding:"required"`
	Name            string           `json:"name" binding:"required,max=255"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	DeliveryCharges *decimal.Decimal `json:"delivery_charges"`
	SKU             string           `json:"sku" binding:"required,max=50"`
	Image           string           `json:"image"`
	Stock           int              `json:"stock" binding:"min=0"`
	IsActive        *bool            `json:"is_active"`
	DiscountPrice   *string          `json:"discount_price"`
	OriginalPrice   *string          `json:"original_price"`
}

// UpdateRequest is the admin payload for partial product updates.
// Nil fields are left untouched.
type UpdateRequest struct {
	CategoryID      *uint            `json:"category_id"`
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	DeliveryCharges *decimal.Decimal `json:"delivery_charges"`
	Image           *string          `json:"image"`
	Stock           *int             `json:"stock"`
	IsActive        *bool            `json:"is_active"`
	DiscountPrice   *string          `json:"discount_price"`
	OriginalPrice   *string          `json:"original_price"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9\s_-]`)
var slugCollapse = regexp.MustCompile(`[\s_-]+`)

// Slugify derives a URL slug from a name: lowercase, strip everything
// but letters, digits, spaces, underscores and hyphens, then collapse
// separators into single hyphens.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// bestEffort runs fn and logs the error instead of failing the
// surrounding operation.
func (s *Service) bestEffort(op string, fn func() error) {
	if err := fn(); err != nil {
		s.logger.WithError(err).WithField("op", op).Warn("best-effort step failed")
	}
}

// GetProducts returns active products as view models, optionally
// filtered by category slug. An unknown slug yields an empty list.
func (s *Service) GetProducts(categorySlug, baseURL string) ([]View, error) {
	query := s.db.Model(&Product{}).
		Where("is_active = ?", true).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering ASC, id ASC")
		}).
		Preload("Discount", "is_active = ?", true).
		Order("created_at DESC")

	if categorySlug != "" {
		sub := s.db.Model(&Category{}).Select("id").Where("slug = ?", categorySlug)
		query = query.Where("category_id IN (?)", sub)
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return BuildViews(products, baseURL, s.config.Media.URLPrefix), nil
}

// GetAllProducts returns every product including inactive ones, for
// the admin surface.
func (s *Service) GetAllProducts(baseURL string) ([]View, error) {
	var products []Product
	err := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering ASC, id ASC")
		}).
		Preload("Discount", "is_active = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return BuildViews(products, baseURL, s.config.Media.URLPrefix), nil
}

// GetProduct returns a single product by ID as a view model. Inactive
// products are still retrievable by direct ID.
func (s *Service) GetProduct(id uint, baseURL string) (*View, error) {
	p, err := s.loadProduct(id)
	if err != nil {
		return nil, err
	}
	view := BuildView(p, baseURL, s.config.Media.URLPrefix)
	return &view, nil
}

func (s *Service) loadProduct(id uint) (*Product, error) {
	var p Product
	err := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering ASC, id ASC")
		}).
		Preload("Discount", "is_active = ?", true).
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// CreateProduct creates a product for the admin surface. The slug is
// derived from the name at creation time and never recomputed.
func (s *Service) CreateProduct(req *CreateRequest, baseURL string) (*View, error) {
	if err := s.validateSKU(req.SKU, 0); err != nil {
		return nil, err
	}
	slug := Slugify(req.Name)
	if err := s.validateSlug(slug, 0); err != nil {
		return nil, err
	}
	var category Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "category_id", Message: "category does not exist"}
		}
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}

	p := Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Price:       req.Price,
		SKU:         req.SKU,
		Image:       req.Image,
		Stock:       req.Stock,
		IsActive:    true,
	}
	if req.DeliveryCharges != nil {
		p.DeliveryCharges = *req.DeliveryCharges
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.applyDiscount(p.ID, p.Price, req.DiscountPrice, req.OriginalPrice)

	return s.GetProduct(p.ID, baseURL)
}

// UpdateProduct partially updates a product. The slug is not
// recomputed when the name changes, but the name is still validated
// against other products' slugs.
func (s *Service) UpdateProduct(id uint, req *UpdateRequest, baseURL string) (*View, error) {
	var p Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	updates := map[string]interface{}{}
	if req.CategoryID != nil {
		var category Category
		if err := s.db.First(&category, *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ValidationError{Field: "category_id", Message: "category does not exist"}
			}
			return nil, fmt.Errorf("failed to look up category: %w", err)
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Name != nil {
		if err := s.validateSlug(Slugify(*req.Name), p.ID); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.DeliveryCharges != nil {
		updates["delivery_charges"] = *req.DeliveryCharges
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&p).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	price := p.Price
	if req.Price != nil {
		price = *req.Price
	}
	s.applyDiscount(p.ID, price, req.DiscountPrice, req.OriginalPrice)

	return s.GetProduct(id, baseURL)
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// applyDiscount maintains the one-to-one discount row from the
// write-side string fields. A non-empty discount price upserts the
// row; an explicit empty string deletes it. Failures are logged and do
// not fail the product write.
func (s *Service) applyDiscount(productID uint, price decimal.Decimal, discountPrice, originalPrice *string) {
	if discountPrice == nil {
		return
	}
	if *discountPrice == "" {
		s.bestEffort("discount delete", func() error {
			return s.db.Where("product_id = ?", productID).Delete(&ProductDiscount{}).Error
		})
		return
	}
	s.bestEffort("discount upsert", func() error {
		dp, err := decimal.NewFromString(*discountPrice)
		if err != nil {
			return fmt.Errorf("invalid discount price %q: %w", *discountPrice, err)
		}
		op := price
		if originalPrice != nil && *originalPrice != "" {
			op, err = decimal.NewFromString(*originalPrice)
			if err != nil {
				return fmt.Errorf("invalid original price %q: %w", *originalPrice, err)
			}
		}
		discount := ProductDiscount{
			ProductID:     productID,
			OriginalPrice: op,
			DiscountPrice: dp,
			IsActive:      true,
		}
		return s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"original_price", "discount_price", "is_active", "updated_at"}),
		}).Create(&discount).Error
	})
}

func (s *Service) validateSKU(sku string, excludeID uint) error {
	var count int64
	query := s.db.Model(&Product{}).Where("sku = ?", sku)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check SKU: %w", err)
	}
	if count > 0 {
		return &ValidationError{Field: "sku", Message: "product with this SKU already exists"}
	}
	return nil
}

func (s *Service) validateSlug(slug string, excludeID uint) error {
	var count int64
	query := s.db.Model(&Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return &ValidationError{Field: "name", Message: "product with this name already exists"}
	}
	return nil
}
