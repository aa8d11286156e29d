// internal/interfaces/http/handlers/blog.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/blog"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
	"github.com/your-org/storefront-backend/internal/pkg/storage"
)

// BlogHandler handles blog endpoints
type BlogHandler struct {
	blogService *blog.Service
	pdfService  *pdf.Service
	storage     storage.Storage
	config      *config.Config
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(db *gorm.DB, cfg *config.Config, store storage.Storage) *BlogHandler {
	return &BlogHandler{
		blogService: blog.NewService(db, cfg),
		pdfService:  pdf.NewService(cfg),
		storage:     store,
		config:      cfg,
	}
}

// ListBlogs handles GET /blogs
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	views, err := h.blogService.ListPublished(requestBaseURL(c))
	if err != nil {
		respondServerError(c, "Failed to retrieve blog posts", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// ListAllBlogs handles GET /blogs/admin (admin)
func (h *BlogHandler) ListAllBlogs(c *gin.Context) {
	views, err := h.blogService.ListAll(requestBaseURL(c))
	if err != nil {
		respondServerError(c, "Failed to retrieve blog posts", err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetBlog handles GET /blogs/:slug
func (h *BlogHandler) GetBlog(c *gin.Context) {
	view, err := h.blogService.GetBySlug(c.Param("slug"), requestBaseURL(c))
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}
		respondServerError(c, "Failed to retrieve blog post", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetBlogByID handles GET /blogs/id/:id (admin), drafts included.
func (h *BlogHandler) GetBlogByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.blogService.GetByID(id, requestBaseURL(c))
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}
		respondServerError(c, "Failed to retrieve blog post", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DownloadBlogPDF handles GET /blogs/:slug/pdf
func (h *BlogHandler) DownloadBlogPDF(c *gin.Context) {
	post, err := h.blogService.LoadBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}
		respondServerError(c, "Failed to retrieve blog post", err)
		return
	}

	buf, err := h.pdfService.GenerateBlogPDF(post)
	if err != nil {
		respondServerError(c, "Failed to generate PDF", err)
		return
	}

	filename := fmt.Sprintf("%s.pdf", post.Slug)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// CreateBlog handles POST /blogs (admin)
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req blog.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.blogService.Create(&req, requestBaseURL(c))
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		respondServerError(c, "Failed to create blog post", err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// UpdateBlog handles PATCH /blogs/:id (admin)
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req blog.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.blogService.Update(id, &req, requestBaseURL(c))
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}
		respondServerError(c, "Failed to update blog post", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteBlog handles DELETE /blogs/:id (admin)
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.blogService.Delete(id); err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}
		respondServerError(c, "Failed to delete blog post", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadBlogImage handles POST /blogs/:id/images (admin, multipart)
func (h *BlogHandler) UploadBlogImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondServerError(c, "Failed to read uploaded file", err)
		return
	}
	defer file.Close()

	ordering, _ := strconv.Atoi(c.PostForm("ordering"))

	view, err := h.blogService.AttachImage(
		h.storage, id, fileHeader.Filename, file,
		c.PostForm("caption"), ordering, requestBaseURL(c),
	)
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}
		respondServerError(c, "Failed to upload image", err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// UploadBlogPDF handles POST /blogs/id/:id/pdf (admin, multipart)
func (h *BlogHandler) UploadBlogPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("pdf_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PDF file is required"})
		return
	}
	if fileHeader.Header.Get("Content-Type") != "application/pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a PDF"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondServerError(c, "Failed to read uploaded file", err)
		return
	}
	defer file.Close()

	var thumbName string
	var thumbSrc io.Reader
	if thumbHeader, err := c.FormFile("pdf_thumbnail"); err == nil {
		thumb, err := thumbHeader.Open()
		if err != nil {
			respondServerError(c, "Failed to read uploaded thumbnail", err)
			return
		}
		defer thumb.Close()
		thumbName = thumbHeader.Filename
		thumbSrc = thumb
	}

	view, err := h.blogService.AttachPDF(
		h.storage, id, fileHeader.Filename, file,
		thumbName, thumbSrc, requestBaseURL(c),
	)
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}
		respondServerError(c, "Failed to upload PDF", err)
		return
	}

	c.JSON(http.StatusOK, view)
}
