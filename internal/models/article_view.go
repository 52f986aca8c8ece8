package models

import (
	"time"
)

// ArticleView is an append-only audit row recorded once per public read.
// Rows are never updated or deleted by normal operation.
type ArticleView struct {
	ID        uint    `json:"id" db:"id" gorm:"primaryKey"`
	ArticleID uint    `json:"article_id" db:"article_id" gorm:"not null;index"`
	Article   Article `json:"article,omitempty" gorm:"foreignKey:ArticleID"`

	IPAddress string    `json:"ip_address" db:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"user_agent" db:"user_agent" gorm:"type:text"`
	ViewedAt  time.Time `json:"viewed_at" db:"viewed_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for the ArticleView model
func (ArticleView) TableName() string {
	return "article_views"
}
