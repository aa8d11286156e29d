// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/user"
)

// ErrNotFound is returned when an order lookup misses.
var ErrNotFound = errors.New("order not found")

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	carts  *cart.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, carts *cart.Service) *Service {
	return &Service{
		db:     db,
		config: cfg,
		carts:  carts,
	}
}

// CheckoutRequest carries the shipping details captured at checkout.
// All fields are optional; address and email fall back to the account
// email when omitted. Colors overrides line colors, keyed by cart item
// ID.
type CheckoutRequest struct {
	Phone      string            `json:"phone" binding:"omitempty,max=30"`
	Address    string            `json:"address" binding:"omitempty,max=500"`
	City       string            `json:"city" binding:"omitempty,max=100"`
	PostalCode string            `json:"postal_code" binding:"omitempty,max=20"`
	Email      string            `json:"email" binding:"omitempty,email"`
	Colors     map[string]string `json:"colors"`
}

// AdminUpdateRequest is the admin PATCH payload. Nil fields are left
// untouched; an empty request writes nothing.
type AdminUpdateRequest struct {
	Status *string `json:"status"`
	IsPaid *bool   `json:"is_paid"`
}

// View is the read shape for orders.
type View struct {
	ID          uint            `json:"id"`
	CartID      uint            `json:"cart_id"`
	User        user.Summary    `json:"user"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	PostalCode  string          `json:"postal_code"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	IsPaid      bool            `json:"is_paid"`
	PaidAt      *time.Time      `json:"paid_at"`
	Items       []Item          `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

func buildView(o *Order) View {
	items := o.Items
	if items == nil {
		items = []Item{}
	}
	return View{
		ID:          o.ID,
		CartID:      o.CartID,
		User:        o.User.Summarize(),
		Email:       o.Email,
		Phone:       o.Phone,
		Address:     o.Address,
		City:        o.City,
		PostalCode:  o.PostalCode,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		IsPaid:      o.IsPaid,
		PaidAt:      o.PaidAt,
		Items:       items,
		CreatedAt:   o.CreatedAt,
	}
}

// Checkout converts the user's active cart into an order. Prices and
// product names are frozen into order lines, the total is the sum of
// current product prices times quantities, and the cart is archived so
// the next cart operation starts a fresh one. The whole conversion
// runs in one transaction. An empty cart checks out fine with a zero
// total; a missing cart is cart.ErrNoActiveCart.
func (s *Service) Checkout(userID uint, req *CheckoutRequest) (*View, error) {
	var u user.User
	if err := s.db.First(&u, userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	activeCart, err := s.carts.ActiveCart(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.carts.LoadItems(activeCart.ID)
	if err != nil {
		return nil, err
	}

	email := req.Email
	if email == "" {
		email = u.Email
	}
	address := req.Address
	if address == "" {
		address = u.Email
	}

	var created Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		lines := make([]Item, 0, len(items))
		for i := range items {
			price := items[i].Product.Price
			total = total.Add(price.Mul(decimal.NewFromInt(int64(items[i].Quantity))))
			// Color comes from the override list alone, never the
			// cart line; unmatched lines ship as "Default".
			color := "Default"
			if override, ok := req.Colors[strconv.FormatUint(uint64(items[i].ID), 10)]; ok && override != "" {
				color = override
			}
			lines = append(lines, Item{
				ProductID:   items[i].ProductID,
				ProductName: items[i].Product.Name,
				Price:       price,
				Quantity:    items[i].Quantity,
				Color:       color,
			})
		}

		created = Order{
			UserID:      userID,
			CartID:      activeCart.ID,
			Email:       email,
			Phone:       req.Phone,
			Address:     address,
			City:        req.City,
			PostalCode:  req.PostalCode,
			TotalAmount: total,
			Status:      StatusPending,
			Items:       lines,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := tx.Model(&cart.Cart{}).Where("id = ?", activeCart.ID).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to archive cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(created.ID)
}

// GetOrders returns all orders newest first, for the admin surface.
func (s *Service) GetOrders() ([]View, error) {
	var orders []Order
	err := s.db.
		Preload("User").
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	views := make([]View, 0, len(orders))
	for i := range orders {
		views = append(views, buildView(&orders[i]))
	}
	return views, nil
}

// GetUserOrders returns one user's orders newest first.
func (s *Service) GetUserOrders(userID uint) ([]View, error) {
	var orders []Order
	err := s.db.
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	views := make([]View, 0, len(orders))
	for i := range orders {
		views = append(views, buildView(&orders[i]))
	}
	return views, nil
}

// GetOrder returns a single order by ID.
func (s *Service) GetOrder(id uint) (*View, error) {
	var o Order
	err := s.db.
		Preload("User").
		Preload("Items").
		First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	view := buildView(&o)
	return &view, nil
}

// AdminUpdate applies a partial status/payment update. Status is
// stored as supplied, with no transition graph enforced. Marking an
// order paid stamps paid_at once; marking it unpaid clears the stamp.
// An empty request performs no write at all.
func (s *Service) AdminUpdate(id uint, req *AdminUpdateRequest) (*View, error) {
	var o Order
	if err := s.db.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.IsPaid != nil {
		updates["is_paid"] = *req.IsPaid
		if *req.IsPaid {
			if o.PaidAt == nil {
				now := time.Now()
				updates["paid_at"] = &now
			}
		} else {
			updates["paid_at"] = nil
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&o).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
	}

	return s.GetOrder(id)
}
