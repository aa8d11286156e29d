// internal/domain/blog/entity.go
package blog

import (
	"time"

	"gorm.io/gorm"
)

// Blog post kinds. Manual posts carry authored content; pdf posts are
// backed by an uploaded document.
const (
	TypeManual = "manual"
	TypePDF    = "pdf"
)

// Blog is a blog post. The slug is derived from the title when the
// post is created and stays fixed across later edits.
type Blog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null;size:255" json:"title"`
	Slug         string         `gorm:"uniqueIndex;not null;size:260" json:"slug"`
	BlogType     string         `gorm:"not null;default:'manual';size:10" json:"blog_type"`
	Excerpt      string         `gorm:"type:text" json:"excerpt"`
	Content      string         `gorm:"type:text" json:"content"`
	Author       string         `gorm:"size:100" json:"author"`
	Image        string         `gorm:"size:500" json:"image"`
	PDFFile      string         `gorm:"size:500" json:"pdf_file"`
	PDFThumbnail string         `gorm:"size:500" json:"pdf_thumbnail"`
	IsPublished  bool           `gorm:"default:true" json:"is_published"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Images []Image `gorm:"foreignKey:BlogID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
}

// Image is an inline gallery image attached to a blog post.
type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlogID    uint      `gorm:"not null;index" json:"blog_id"`
	Image     string    `gorm:"size:500" json:"image"`
	Caption   string    `gorm:"size:255" json:"caption"`
	Ordering  int       `gorm:"not null;default:0" json:"ordering"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Blog) TableName() string  { return "blogs" }
func (Image) TableName() string { return "blog_images" }
