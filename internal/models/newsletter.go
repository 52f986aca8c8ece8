package models

import (
	"time"
)

// Newsletter is a subscription keyed by unique email address
type Newsletter struct {
	ID             uint       `json:"id" db:"id" gorm:"primaryKey"`
	Email          string     `json:"email" db:"email" gorm:"size:255;uniqueIndex;not null"`
	IsActive       bool       `json:"is_active" db:"is_active" gorm:"default:true"`
	SubscribedAt   time.Time  `json:"subscribed_at" db:"subscribed_at" gorm:"autoCreateTime"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at" db:"unsubscribed_at"`
}

// TableName sets the table name for the Newsletter model
func (Newsletter) TableName() string {
	return "newsletter_subscriptions"
}
