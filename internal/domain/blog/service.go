// internal/domain/blog/service.go
package blog

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/storage"
)

// ErrNotFound is returned when a blog post does not exist.
var ErrNotFound = errors.New("blog post not found")

// Service handles blog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new blog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateRequest is the admin payload for creating a blog post.
type CreateRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	BlogType    string `json:"blog_type" binding:"omitempty,oneof=manual pdf"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	Image       string `json:"image"`
	IsPublished *bool  `json:"is_published"`
}

// UpdateRequest is the admin payload for partial blog updates. Title
// edits keep the original slug.
type UpdateRequest struct {
	Title       *string `json:"title"`
	BlogType    *string `json:"blog_type" binding:"omitempty,oneof=manual pdf"`
	Excerpt     *string `json:"excerpt"`
	Content     *string `json:"content"`
	Author      *string `json:"author"`
	Image       *string `json:"image"`
	IsPublished *bool   `json:"is_published"`
}

// ImageView is a blog gallery image with its media path resolved.
type ImageView struct {
	ID       uint    `json:"id"`
	Image    *string `json:"image"`
	Caption  string  `json:"caption"`
	Ordering int     `json:"ordering"`
}

// View is the read shape for blog posts.
type View struct {
	ID           uint        `json:"id"`
	Title        string      `json:"title"`
	Slug         string      `json:"slug"`
	BlogType     string      `json:"blog_type"`
	Excerpt      string      `json:"excerpt"`
	Content      string      `json:"content"`
	Author       string      `json:"author"`
	Image        *string     `json:"image"`
	PDFFile      *string     `json:"pdf_file"`
	PDFThumbnail *string     `json:"pdf_thumbnail"`
	IsPublished  bool        `json:"is_published"`
	Images       []ImageView `json:"images"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (s *Service) buildView(b *Blog, baseURL string) View {
	prefix := s.config.Media.URLPrefix
	v := View{
		ID:           b.ID,
		Title:        b.Title,
		Slug:         b.Slug,
		BlogType:     b.BlogType,
		Excerpt:      b.Excerpt,
		Content:      b.Content,
		Author:       b.Author,
		Image:        product.ResolveMediaURL(baseURL, prefix, b.Image),
		PDFFile:      product.ResolveMediaURL(baseURL, prefix, b.PDFFile),
		PDFThumbnail: product.ResolveMediaURL(baseURL, prefix, b.PDFThumbnail),
		IsPublished:  b.IsPublished,
		Images:       make([]ImageView, 0, len(b.Images)),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	for _, img := range b.Images {
		v.Images = append(v.Images, ImageView{
			ID:       img.ID,
			Image:    product.ResolveMediaURL(baseURL, prefix, img.Image),
			Caption:  img.Caption,
			Ordering: img.Ordering,
		})
	}
	return v
}

// ListPublished returns published posts, newest first.
func (s *Service) ListPublished(baseURL string) ([]View, error) {
	var blogs []Blog
	err := s.db.
		Where("is_published = ?", true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering ASC, id ASC")
		}).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	views := make([]View, 0, len(blogs))
	for i := range blogs {
		views = append(views, s.buildView(&blogs[i], baseURL))
	}
	return views, nil
}

// ListAll returns every post for the admin surface.
func (s *Service) ListAll(baseURL string) ([]View, error) {
	var blogs []Blog
	err := s.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering ASC, id ASC")
		}).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	views := make([]View, 0, len(blogs))
	for i := range blogs {
		views = append(views, s.buildView(&blogs[i], baseURL))
	}
	return views, nil
}

// GetBySlug returns a published post by slug.
func (s *Service) GetBySlug(slug, baseURL string) (*View, error) {
	b, err := s.loadBySlug(slug)
	if err != nil {
		return nil, err
	}
	view := s.buildView(b, baseURL)
	return &view, nil
}

// LoadBySlug returns the raw entity for a published post, images
// preloaded. The PDF renderer works from this shape.
func (s *Service) LoadBySlug(slug string) (*Blog, error) {
	return s.loadBySlug(slug)
}

func (s *Service) loadBySlug(slug string) (*Blog, error) {
	var b Blog
	err := s.db.
		Where("slug = ? AND is_published = ?", slug, true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering ASC, id ASC")
		}).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	return &b, nil
}

// GetByID returns a post by ID regardless of publish state, for the
// admin surface.
func (s *Service) GetByID(id uint, baseURL string) (*View, error) {
	var b Blog
	err := s.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering ASC, id ASC")
		}).
		First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	view := s.buildView(&b, baseURL)
	return &view, nil
}

// Create creates a blog post, deriving the slug from the title.
func (s *Service) Create(req *CreateRequest, baseURL string) (*View, error) {
	slug := product.Slugify(req.Title)
	var count int64
	if err := s.db.Model(&Blog{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return nil, &product.ValidationError{Field: "title", Message: "blog post with this title already exists"}
	}
	b := Blog{
		Title:       req.Title,
		Slug:        slug,
		BlogType:    TypeManual,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		Author:      req.Author,
		Image:       req.Image,
		IsPublished: true,
	}
	if req.BlogType != "" {
		b.BlogType = req.BlogType
	}
	if req.IsPublished != nil {
		b.IsPublished = *req.IsPublished
	}
	if err := s.db.Create(&b).Error; err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}
	view := s.buildView(&b, baseURL)
	return &view, nil
}

// Update partially updates a blog post. The slug never changes.
func (s *Service) Update(id uint, req *UpdateRequest, baseURL string) (*View, error) {
	var b Blog
	if err := s.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.BlogType != nil {
		updates["blog_type"] = *req.BlogType
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}
	if len(updates) > 0 {
		if err := s.db.Model(&b).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update blog post: %w", err)
		}
	}
	if err := s.db.Preload("Images").First(&b, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload blog post: %w", err)
	}
	view := s.buildView(&b, baseURL)
	return &view, nil
}

// Delete removes a blog post.
func (s *Service) Delete(id uint) error {
	result := s.db.Delete(&Blog{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete blog post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachImage stores an uploaded image against a post. The first image
// of a post with no cover becomes the cover.
func (s *Service) AttachImage(store storage.Storage, blogID uint, fileName string, src io.Reader, caption string, ordering int, baseURL string) (*View, error) {
	var b Blog
	if err := s.db.First(&b, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	path, err := store.Save("blogs", fileName, src)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	img := Image{
		BlogID:   blogID,
		Image:    path,
		Caption:  caption,
		Ordering: ordering,
	}
	if err := s.db.Create(&img).Error; err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}
	if b.Image == "" {
		if err := s.db.Model(&b).Update("image", path).Error; err != nil {
			return nil, fmt.Errorf("failed to set cover image: %w", err)
		}
	}
	if err := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("ordering ASC, id ASC")
	}).First(&b, blogID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload blog post: %w", err)
	}
	view := s.buildView(&b, baseURL)
	return &view, nil
}

// AttachPDF stores an uploaded PDF document against a post, with an
// optional thumbnail image. thumbName/thumbSrc may be empty/nil.
func (s *Service) AttachPDF(store storage.Storage, blogID uint, fileName string, src io.Reader, thumbName string, thumbSrc io.Reader, baseURL string) (*View, error) {
	var b Blog
	if err := s.db.First(&b, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	path, err := store.Save("blogs/pdfs", fileName, src)
	if err != nil {
		return nil, fmt.Errorf("failed to store pdf: %w", err)
	}
	updates := map[string]interface{}{"pdf_file": path}
	if thumbSrc != nil {
		thumbPath, err := store.Save("blogs/pdf_thumbnails", thumbName, thumbSrc)
		if err != nil {
			return nil, fmt.Errorf("failed to store pdf thumbnail: %w", err)
		}
		updates["pdf_thumbnail"] = thumbPath
	}
	if err := s.db.Model(&b).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to save pdf: %w", err)
	}
	if err := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("ordering ASC, id ASC")
	}).First(&b, blogID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload blog post: %w", err)
	}
	view := s.buildView(&b, baseURL)
	return &view, nil
}
