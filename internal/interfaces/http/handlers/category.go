// internal/interfaces/http/handlers/category.go
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

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		productService: product.NewService(db, cfg, log),
		config:         cfg,
	}
}

// GetCategories handles GET /catalog/categories. Only active top-level
// categories are returned, with active children nested.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	views, err := h.productService.GetCategories(requestBaseURL(c))
	if err != nil {
		respondServerError(c, "Failed to retrieve categories", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetAllCategories handles GET /catalog/admin/categories (admin)
func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	views, err := h.productService.GetAllCategories(requestBaseURL(c))
	if err != nil {
		respondServerError(c, "Failed to retrieve categories", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// CreateCategory handles POST /catalog/categories (admin)
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req product.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.productService.CreateCategory(&req, requestBaseURL(c))
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		respondServerError(c, "Failed to create category", err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// UpdateCategory handles PATCH /catalog/categories/:id (admin)
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req product.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.productService.UpdateCategory(id, &req, requestBaseURL(c))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if respondValidationError(c, err) {
			return
		}
		respondServerError(c, "Failed to update category", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteCategory handles DELETE /catalog/categories/:id (admin)
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteCategory(id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		respondServerError(c, "Failed to delete category", err)
		return
	}

	c.Status(http.StatusNoContent)
}
