// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		productService: product.NewService(db, cfg, log),
		config:         cfg,
	}
}

// GetProducts handles GET /catalog/products. An unknown category slug
// yields an empty list, not an error.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	categorySlug := c.Query("category")

	views, err := h.productService.GetProducts(categorySlug, requestBaseURL(c))
	if err != nil {
		respondServerError(c, "Failed to retrieve products", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetProductsByCategory handles GET /catalog/categories/:slug/products.
// An unknown slug yields an empty list, same as the ?category filter.
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	views, err := h.productService.GetProducts(c.Param("slug"), requestBaseURL(c))
	if err != nil {
		respondServerError(c, "Failed to retrieve products", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetAllProducts handles GET /catalog/admin/products, inactive included.
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	views, err := h.productService.GetAllProducts(requestBaseURL(c))
	if err != nil {
		respondServerError(c, "Failed to retrieve products", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetProduct handles GET /catalog/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.productService.GetProduct(id, requestBaseURL(c))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		respondServerError(c, "Failed to retrieve product", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// CreateProduct handles POST /catalog/products (admin)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.productService.CreateProduct(&req, requestBaseURL(c))
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		respondServerError(c, "Failed to create product", err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// UpdateProduct handles PATCH /catalog/products/:id (admin)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req product.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.productService.UpdateProduct(id, &req, requestBaseURL(c))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if respondValidationError(c, err) {
			return
		}
		respondServerError(c, "Failed to update product", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteProduct handles DELETE /catalog/products/:id (admin)
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		respondServerError(c, "Failed to delete product", err)
		return
	}

	c.Status(http.StatusNoContent)
}
