// internal/domain/order/stats.go
package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
)

const (
	lowStockThreshold = 10
	dashboardLimit    = 4
)

// RecentOrder is the compact order shape on the admin dashboard.
type RecentOrder struct {
	ID          uint            `json:"id"`
	User        user.Summary    `json:"user"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	IsPaid      bool            `json:"is_paid"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LowStockProduct is the compact product shape on the admin dashboard.
type LowStockProduct struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Stock int    `json:"stock"`
}

// Stats is the admin dashboard payload.
type Stats struct {
	TotalProducts   int64             `json:"total_products"`
	TotalCategories int64             `json:"total_categories"`
	TotalOrders     int64             `json:"total_orders"`
	RecentOrders    []RecentOrder     `json:"recent_orders"`
	LowStock        []LowStockProduct `json:"low_stock_products"`
}

// GetStats assembles the admin dashboard: overall counts, the four
// most recent orders, and the four products lowest on stock.
func (s *Service) GetStats() (*Stats, error) {
	stats := &Stats{
		RecentOrders: []RecentOrder{},
		LowStock:     []LowStockProduct{},
	}

	if err := s.db.Model(&product.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&product.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if err := s.db.Model(&Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var recent []Order
	err := s.db.
		Preload("User").
		Order("created_at DESC").
		Limit(dashboardLimit).
		Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent orders: %w", err)
	}
	for i := range recent {
		stats.RecentOrders = append(stats.RecentOrders, RecentOrder{
			ID:          recent[i].ID,
			User:        recent[i].User.Summarize(),
			TotalAmount: recent[i].TotalAmount,
			Status:      recent[i].Status,
			IsPaid:      recent[i].IsPaid,
			CreatedAt:   recent[i].CreatedAt,
		})
	}

	var low []product.Product
	err = s.db.
		Where("stock < ?", lowStockThreshold).
		Order("stock ASC").
		Limit(dashboardLimit).
		Find(&low).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}
	for i := range low {
		stats.LowStock = append(stats.LowStock, LowStockProduct{
			ID:    low[i].ID,
			Name:  low[i].Name,
			SKU:   low[i].SKU,
			Stock: low[i].Stock,
		})
	}

	return stats, nil
}
