package store

import (
	"errors"
	"time"

	"newsguard/internal/models"

	"gorm.io/gorm"
)

// Subscription outcomes reported to the caller.
const (
	SubscribeCreated       = "created"
	SubscribeAlreadyActive = "already_active"
	SubscribeReactivated   = "reactivated"
)

// Newsletters provides typed access to newsletter subscriptions
type Newsletters struct {
	db *gorm.DB
}

// NewNewsletters creates a newsletter store over the given connection
func NewNewsletters(db *gorm.DB) *Newsletters {
	return &Newsletters{db: db}
}

// Subscribe records the email. An already-active subscription is a
// success, not a duplicate; an inactive one is reactivated in place. No
// second row is ever created for the same email.
func (s *Newsletters) Subscribe(email string) (string, error) {
	var existing models.Newsletter
	err := s.db.Where("email = ?", email).First(&existing).Error

	switch {
	case err == nil:
		if existing.IsActive {
			return SubscribeAlreadyActive, nil
		}
		updates := map[string]interface{}{
			"is_active":       true,
			"unsubscribed_at": nil,
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return "", translateErr("failed to reactivate subscription", err)
		}
		return SubscribeReactivated, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		subscription := models.Newsletter{Email: email, IsActive: true}
		if err := s.db.Create(&subscription).Error; err != nil {
			return "", translateWrite(err, "email")
		}
		return SubscribeCreated, nil

	default:
		return "", translateErr("failed to look up subscription", err)
	}
}

// Unsubscribe deactivates the subscription and stamps unsubscribed_at.
func (s *Newsletters) Unsubscribe(email string) error {
	now := time.Now()
	result := s.db.Model(&models.Newsletter{}).
		Where("email = ? AND is_active = ?", email, true).
		Updates(map[string]interface{}{
			"is_active":       false,
			"unsubscribed_at": now,
		})
	if result.Error != nil {
		return translateErr("failed to unsubscribe", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("subscription")
	}
	return nil
}

// CountActive returns the number of active subscribers.
func (s *Newsletters) CountActive() (int64, error) {
	var count int64
	err := s.db.Model(&models.Newsletter{}).Where("is_active = ?", true).Count(&count).Error
	if err != nil {
		return 0, translateErr("failed to count subscribers", err)
	}
	return count, nil
}

// GetByEmail fetches one subscription by its unique email.
func (s *Newsletters) GetByEmail(email string) (*models.Newsletter, error) {
	var subscription models.Newsletter
	err := s.db.Where("email = ?", email).First(&subscription).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("subscription")
	}
	if err != nil {
		return nil, translateErr("failed to load subscription", err)
	}
	return &subscription, nil
}
