// internal/domain/product/category_service.go
package product

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// CategoryView is the read shape for categories, with children nested
// one level deep.
type CategoryView struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Image       *string        `json:"image"`
	ParentID    *uint          `json:"parent_id"`
	IsActive    bool           `json:"is_active"`
	Children    []CategoryView `json:"children"`
}

// CategoryCreateRequest is the admin payload for creating a category.
type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ParentID    *uint  `json:"parent_id"`
	IsActive    *bool  `json:"is_active"`
}

// CategoryUpdateRequest is the admin payload for partial category
// updates.
type CategoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	ParentID    *uint   `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
}

func (s *Service) buildCategoryView(c *Category, baseURL string) CategoryView {
	view := CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       ResolveMediaURL(baseURL, s.config.Media.URLPrefix, c.Image),
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
		Children:    make([]CategoryView, 0, len(c.Children)),
	}
	for i := range c.Children {
		view.Children = append(view.Children, s.buildCategoryView(&c.Children[i], baseURL))
	}
	return view
}

// GetCategories returns active top-level categories with their active
// children nested one level deep.
func (s *Service) GetCategories(baseURL string) ([]CategoryView, error) {
	var categories []Category
	err := s.db.
		Where("parent_id IS NULL AND is_active = ?", true).
		Preload("Children", "is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	views := make([]CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, s.buildCategoryView(&categories[i], baseURL))
	}
	return views, nil
}

// GetAllCategories returns every category, active or not, for the
// admin surface.
func (s *Service) GetAllCategories(baseURL string) ([]CategoryView, error) {
	var categories []Category
	err := s.db.
		Where("parent_id IS NULL").
		Preload("Children").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	views := make([]CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, s.buildCategoryView(&categories[i], baseURL))
	}
	return views, nil
}

// CreateCategory creates a category. The slug is derived from the name
// at creation time.
func (s *Service) CreateCategory(req *CategoryCreateRequest, baseURL string) (*CategoryView, error) {
	slug := Slugify(req.Name)
	if err := s.validateCategory(req.Name, slug, 0); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if err := s.validateParent(*req.ParentID, 0); err != nil {
			return nil, err
		}
	}
	c := Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Image:       req.Image,
		ParentID:    req.ParentID,
		IsActive:    true,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	view := s.buildCategoryView(&c, baseURL)
	return &view, nil
}

// UpdateCategory partially updates a category. Renames keep the
// original slug.
func (s *Service) UpdateCategory(id uint, req *CategoryUpdateRequest, baseURL string) (*CategoryView, error) {
	var c Category
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if err := s.validateCategory(*req.Name, Slugify(*req.Name), c.ID); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.ParentID != nil {
		if err := s.validateParent(*req.ParentID, c.ID); err != nil {
			return nil, err
		}
		updates["parent_id"] = *req.ParentID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.Model(&c).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}
	if err := s.db.Preload("Children").First(&c, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload category: %w", err)
	}
	view := s.buildCategoryView(&c, baseURL)
	return &view, nil
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(id uint) error {
	result := s.db.Delete(&Category{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) validateCategory(name, slug string, excludeID uint) error {
	var count int64
	query := s.db.Model(&Category{}).Where("name = ? OR slug = ?", name, slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if count > 0 {
		return &ValidationError{Field: "name", Message: "category with this name already exists"}
	}
	return nil
}

// validateParent enforces the two-level tree: a parent must exist,
// must itself be top-level, and a category cannot be its own parent.
func (s *Service) validateParent(parentID, selfID uint) error {
	if parentID == selfID {
		return &ValidationError{Field: "parent_id", Message: "category cannot be its own parent"}
	}
	var parent Category
	if err := s.db.First(&parent, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ValidationError{Field: "parent_id", Message: "parent category does not exist"}
		}
		return fmt.Errorf("failed to look up parent category: %w", err)
	}
	if parent.ParentID != nil {
		return &ValidationError{Field: "parent_id", Message: "parent must be a top-level category"}
	}
	return nil
}
