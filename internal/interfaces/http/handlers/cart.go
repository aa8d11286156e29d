// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db, cfg),
		config:      cfg,
	}
}

// GetCart handles GET /orders/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	view, err := h.cartService.GetCart(userID, requestBaseURL(c))
	if err != nil {
		respondServerError(c, "Failed to retrieve cart", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddItem handles POST /orders/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.cartService.AddItem(userID, &req, requestBaseURL(c))
	if err != nil {
		if errors.Is(err, cart.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		respondServerError(c, "Failed to add item to cart", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// RemoveItem handles DELETE /orders/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.cartService.RemoveItem(userID, itemID, requestBaseURL(c))
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		respondServerError(c, "Failed to remove cart item", err)
		return
	}

	c.JSON(http.StatusOK, view)
}
