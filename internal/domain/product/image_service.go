// internal/domain/product/image_service.go
package product

import (
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/pkg/storage"
)

// ImageUpload is one file in an admin gallery upload.
type ImageUpload struct {
	FileName string
	Reader   io.Reader
	Color    string
	AltText  string
	Ordering int
}

// UploadImages stores gallery images for a product. When clearOld is
// set, existing gallery rows are removed first (their files are
// deleted best-effort). The first uploaded image also becomes the
// product's main image when the product has none; that step never
// fails the upload.
func (s *Service) UploadImages(store storage.Storage, productID uint, uploads []ImageUpload, clearOld bool, baseURL string) (*View, error) {
	var p Product
	if err := s.db.First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if clearOld {
		var old []ProductImage
		if err := s.db.Where("product_id = ?", productID).Find(&old).Error; err != nil {
			return nil, fmt.Errorf("failed to list existing images: %w", err)
		}
		if err := s.db.Where("product_id = ?", productID).Delete(&ProductImage{}).Error; err != nil {
			return nil, fmt.Errorf("failed to clear existing images: %w", err)
		}
		for _, img := range old {
			path := img.Image
			s.bestEffort("image file delete", func() error {
				return store.Delete(path)
			})
		}
	}

	for i, up := range uploads {
		path, err := store.Save("products/images", up.FileName, up.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		color := up.Color
		if color == "" {
			color = "Default"
		}
		img := ProductImage{
			ProductID: productID,
			Image:     path,
			Color:     color,
			AltText:   up.AltText,
			Ordering:  up.Ordering,
		}
		if err := s.db.Create(&img).Error; err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		if i == 0 && (clearOld || p.Image == "") {
			s.bestEffort("main image update", func() error {
				return s.db.Model(&Product{}).Where("id = ?", productID).
					Update("image", path).Error
			})
		}
	}

	return s.GetProduct(productID, baseURL)
}

// DeleteImage removes a single gallery image. The stored file is
// deleted best-effort after the row is gone.
func (s *Service) DeleteImage(store storage.Storage, productID, imageID uint) error {
	var img ProductImage
	err := s.db.Where("id = ? AND product_id = ?", imageID, productID).First(&img).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get image: %w", err)
	}
	if err := s.db.Delete(&img).Error; err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	s.bestEffort("image file delete", func() error {
		return store.Delete(img.Image)
	})
	return nil
}
