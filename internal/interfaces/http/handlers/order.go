// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService: order.NewService(db, cfg, cart.NewService(db, cfg)),
		config:       cfg,
	}
}

// Checkout handles POST /orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req order.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.orderService.Checkout(userID, &req)
	if err != nil {
		if errors.Is(err, cart.ErrNoActiveCart) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active cart"})
			return
		}
		respondServerError(c, "Failed to check out", err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// GetOrders handles GET /orders (admin)
func (h *OrderHandler) GetOrders(c *gin.Context) {
	views, err := h.orderService.GetOrders()
	if err != nil {
		respondServerError(c, "Failed to retrieve orders", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetMyOrders handles GET /orders/mine
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	views, err := h.orderService.GetUserOrders(userID)
	if err != nil {
		respondServerError(c, "Failed to retrieve orders", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetOrder handles GET /orders/:id (admin)
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.orderService.GetOrder(id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		respondServerError(c, "Failed to retrieve order", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateOrder handles PATCH /orders/:id (admin)
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req order.AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.orderService.AdminUpdate(id, &req)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		respondServerError(c, "Failed to update order", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetStats handles GET /orders/stats (admin)
func (h *OrderHandler) GetStats(c *gin.Context) {
	stats, err := h.orderService.GetStats()
	if err != nil {
		respondServerError(c, "Failed to retrieve stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
