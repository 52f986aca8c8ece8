package models

import (
	"time"
)

// Article statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
	StatusFlagged   = "flagged"
)

// Article represents a single news article owned by a category
type Article struct {
	ID      uint   `json:"id" db:"id" gorm:"primaryKey"`
	Title   string `json:"title" db:"title" gorm:"size:200;not null"`
	Slug    string `json:"slug" db:"slug" gorm:"size:200;uniqueIndex;not null"`
	Content string `json:"content" db:"content" gorm:"type:text;not null"`
	Summary string `json:"summary" db:"summary" gorm:"type:text"`
	Author  string `json:"author" db:"author" gorm:"size:100;not null"`

	Status string `json:"status" db:"status" gorm:"size:20;default:'draft';index"`

	// SEO and presentation
	MetaDescription string `json:"meta_description" db:"meta_description" gorm:"size:160"`
	FeaturedImage   string `json:"featured_image" db:"featured_image" gorm:"size:500"`

	// Engagement counters, only ever incremented
	ViewsCount    int `json:"views_count" db:"views_count" gorm:"default:0"`
	LikesCount    int `json:"likes_count" db:"likes_count" gorm:"default:0"`
	DislikesCount int `json:"dislikes_count" db:"dislikes_count" gorm:"default:0"`
	SharesCount   int `json:"shares_count" db:"shares_count" gorm:"default:0"`

	// Placement flags
	IsFeatured     bool `json:"is_featured" db:"is_featured" gorm:"default:false"`
	IsTrending     bool `json:"is_trending" db:"is_trending" gorm:"default:false"`
	IsBreakingNews bool `json:"is_breaking_news" db:"is_breaking_news" gorm:"default:false"`

	// PublishedAt is set on the first transition into "published" and never cleared
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	CategoryID uint     `json:"category_id" db:"category_id" gorm:"not null;index"`
	Category   Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// TableName sets the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// IsValidStatus reports whether s is one of the defined article statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived, StatusFlagged:
		return true
	}
	return false
}
