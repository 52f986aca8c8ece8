package models

import (
	"time"
)

// SiteStats is the persisted platform aggregate snapshot. Totals are
// recomputed on read and written back opportunistically.
type SiteStats struct {
	ID            uint      `json:"id" db:"id" gorm:"primaryKey"`
	TotalArticles int       `json:"total_articles" db:"total_articles" gorm:"default:0"`
	TotalUsers    int       `json:"total_users" db:"total_users" gorm:"default:0"`
	TotalViews    int       `json:"total_views" db:"total_views" gorm:"default:0"`
	AccuracyRate  float64   `json:"accuracy_rate" db:"accuracy_rate" gorm:"default:95.0"`
	LastUpdated   time.Time `json:"last_updated" db:"last_updated" gorm:"autoUpdateTime"`
}

// TableName sets the table name for the SiteStats model
func (SiteStats) TableName() string {
	return "site_stats"
}
