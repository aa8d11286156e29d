// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/storage"
)

// UploadHandler handles product image uploads
type UploadHandler struct {
	productService *product.Service
	storage        storage.Storage
	config         *config.Config
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger, store storage.Storage) *UploadHandler {
	return &UploadHandler{
		productService: product.NewService(db, cfg, log),
		storage:        store,
		config:         cfg,
	}
}

// UploadProductImages handles POST /catalog/products/:id/images
// (admin, multipart). Accepts one or more files under the "images"
// field; "clear_old=true" replaces the existing gallery.
func (h *UploadHandler) UploadProductImages(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form required"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		if single, ferr := c.FormFile("image"); ferr == nil {
			files = append(files, single)
		}
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image file is required"})
		return
	}

	clearOld := c.PostForm("clear_old") == "true"
	colors := form.Value["colors"]
	altTexts := form.Value["alt_texts"]

	uploads := make([]product.ImageUpload, 0, len(files))
	for i, fh := range files {
		file, err := fh.Open()
		if err != nil {
			respondServerError(c, "Failed to read uploaded file", err)
			return
		}
		defer file.Close()

		up := product.ImageUpload{
			FileName: fh.Filename,
			Reader:   file,
			Ordering: i,
		}
		if i < len(colors) {
			up.Color = colors[i]
		}
		if i < len(altTexts) {
			up.AltText = altTexts[i]
		}
		if ord := c.PostForm("ordering"); ord != "" && len(files) == 1 {
			if n, err := strconv.Atoi(ord); err == nil {
				up.Ordering = n
			}
		}
		uploads = append(uploads, up)
	}

	view, err := h.productService.UploadImages(h.storage, id, uploads, clearOld, requestBaseURL(c))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		respondServerError(c, "Failed to upload images", err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// DeleteProductImage handles DELETE /catalog/products/:id/images/:imageId (admin)
func (h *UploadHandler) DeleteProductImage(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return
	}

	if err := h.productService.DeleteImage(h.storage, productID, imageID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		respondServerError(c, "Failed to delete image", err)
		return
	}

	c.Status(http.StatusNoContent)
}
