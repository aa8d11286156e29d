// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// Errors returned by the cart service.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrNoActiveCart    = errors.New("no active cart")
)

// Service handles cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
	Color     string `json:"color"`
}

// ItemView is one cart line with its product resolved to a view model.
type ItemView struct {
	ID        uint            `json:"id"`
	Product   product.View    `json:"product"`
	Quantity  int             `json:"quantity"`
	Color     string          `json:"color"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// View is the read shape for a cart.
type View struct {
	ID          uint            `json:"id"`
	Items       []ItemView      `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// GetOrCreateActiveCart returns the user's active cart, creating one
// when none exists. A concurrent create losing the race on the partial
// unique index re-reads the winner's row.
func (s *Service) GetOrCreateActiveCart(userID uint) (*Cart, error) {
	c, err := s.ActiveCart(userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNoActiveCart) {
		return nil, err
	}

	fresh := Cart{UserID: userID, IsActive: true}
	if err := s.db.Create(&fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race; another request created the cart.
			existing, rerr := s.ActiveCart(userID)
			if rerr != nil {
				return nil, fmt.Errorf("failed to get cart after conflict: %w", rerr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return &fresh, nil
}

// ActiveCart returns the user's active cart without creating one.
func (s *Service) ActiveCart(userID uint) (*Cart, error) {
	var c Cart
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveCart
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &c, nil
}

// GetCart returns the user's active cart as a view model, creating the
// cart when none exists.
func (s *Service) GetCart(userID uint, baseURL string) (*View, error) {
	c, err := s.GetOrCreateActiveCart(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.LoadItems(c.ID)
	if err != nil {
		return nil, err
	}
	view := View{
		ID:          c.ID,
		Items:       make([]ItemView, 0, len(items)),
		TotalAmount: decimal.Zero,
	}
	for i := range items {
		lineTotal := items[i].Product.Price.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		view.Items = append(view.Items, ItemView{
			ID:       items[i].ID,
			Product:  product.BuildView(&items[i].Product, baseURL, s.config.Media.URLPrefix),
			Quantity: items[i].Quantity,
			Color:    items[i].Color,
			LineTotal: lineTotal,
		})
		view.TotalItems += items[i].Quantity
		view.TotalAmount = view.TotalAmount.Add(lineTotal)
	}
	return &view, nil
}

// LoadItems returns a cart's lines with products fully preloaded.
func (s *Service) LoadItems(cartID uint) ([]Item, error) {
	var items []Item
	err := s.db.Where("cart_id = ?", cartID).
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering ASC, id ASC")
		}).
		Preload("Product.Discount", "is_active = ?", true).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	return items, nil
}

// AddItem adds a product to the user's active cart. Re-adding the same
// (product, color) combination increments the line's quantity instead
// of creating a new line.
func (s *Service) AddItem(userID uint, req *AddItemRequest, baseURL string) (*View, error) {
	var p product.Product
	err := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	c, err := s.GetOrCreateActiveCart(userID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	color := req.Color
	if color == "" {
		color = "Default"
	}

	var item Item
	err = s.db.Where("cart_id = ? AND product_id = ? AND color = ?", c.ID, req.ProductID, color).
		First(&item).Error
	switch {
	case err == nil:
		err = s.db.Model(&item).Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = Item{
			CartID:    c.ID,
			ProductID: req.ProductID,
			Quantity:  quantity,
			Color:     color,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	return s.GetCart(userID, baseURL)
}

// RemoveItem deletes a line from the user's active cart. Items in
// other users' carts are treated as not found.
func (s *Service) RemoveItem(userID, itemID uint, baseURL string) (*View, error) {
	c, err := s.GetOrCreateActiveCart(userID)
	if err != nil {
		return nil, err
	}
	result := s.db.Where("id = ? AND cart_id = ?", itemID, c.ID).Delete(&Item{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}
	return s.GetCart(userID, baseURL)
}
