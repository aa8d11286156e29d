// internal/domain/newsletter/entity.go
package newsletter

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Subscriber is a newsletter subscription. Email is unique across
// active and inactive rows; unsubscribing flips is_active instead of
// deleting, so resubscribing reuses the row.
type Subscriber struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	SubscribedAt time.Time `gorm:"autoCreateTime" json:"subscribed_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Subscriber) TableName() string {
	return "newsletter_subscribers"
}

// BeforeCreate normalizes the email address
func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	return nil
}
