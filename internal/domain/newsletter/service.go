// internal/domain/newsletter/service.go
package newsletter

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no subscription exists for an email.
var ErrNotFound = errors.New("subscription not found")

// Service handles newsletter subscriptions
type Service struct {
	db *gorm.DB
}

// NewService creates a new newsletter service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SubscribeRequest is the subscribe/unsubscribe payload.
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe adds an email to the newsletter. Subscribing an address
// that is already active is a no-op; an inactive one is reactivated.
// Two concurrent subscribes for the same new address both succeed:
// the loser of the insert race recovers from the unique-index conflict
// and reuses the winner's row.
func (s *Service) Subscribe(email string) (*Subscriber, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var sub Subscriber
	err := s.db.Where("email = ?", email).First(&sub).Error
	switch {
	case err == nil:
		return s.reactivate(&sub)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return nil, false, fmt.Errorf("failed to look up subscription: %w", err)
	}

	sub = Subscriber{Email: email, IsActive: true}
	if err := s.db.Create(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the insert race; reuse the existing row.
			var existing Subscriber
			if rerr := s.db.Where("email = ?", email).First(&existing).Error; rerr != nil {
				return nil, false, fmt.Errorf("failed to get subscription after conflict: %w", rerr)
			}
			return s.reactivate(&existing)
		}
		return nil, false, fmt.Errorf("failed to subscribe: %w", err)
	}
	return &sub, true, nil
}

// reactivate flips an existing row back to active when needed. The
// second return reports whether the subscription is new.
func (s *Service) reactivate(sub *Subscriber) (*Subscriber, bool, error) {
	if sub.IsActive {
		return sub, false, nil
	}
	if err := s.db.Model(sub).Update("is_active", true).Error; err != nil {
		return nil, false, fmt.Errorf("failed to reactivate subscription: %w", err)
	}
	sub.IsActive = true
	return sub, false, nil
}

// Unsubscribe deactivates a subscription. Unknown addresses return
// ErrNotFound; an already inactive subscription unsubscribes cleanly.
func (s *Service) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	var sub Subscriber
	err := s.db.Where("email = ?", email).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up subscription: %w", err)
	}
	if !sub.IsActive {
		return nil
	}
	if err := s.db.Model(&sub).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

// ListActive returns active subscribers, newest first, for the admin
// surface.
func (s *Service) ListActive() ([]Subscriber, error) {
	var subs []Subscriber
	err := s.db.Where("is_active = ?", true).Order("subscribed_at DESC").Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}

// ListAll returns every subscriber, active or not.
func (s *Service) ListAll() ([]Subscriber, error) {
	var subs []Subscriber
	err := s.db.Order("subscribed_at DESC").Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}
