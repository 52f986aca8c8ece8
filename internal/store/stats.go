package store

import (
	"errors"

	"newsguard/internal/models"

	"gorm.io/gorm"
)

// Stats recomputes and persists the platform aggregate snapshot
type Stats struct {
	db *gorm.DB
}

// NewStats creates a stats store over the given connection
func NewStats(db *gorm.DB) *Stats {
	return &Stats{db: db}
}

// Snapshot recomputes the totals from live rows, writes them back into the
// single site_stats row (creating it on first read) and returns the result.
func (s *Stats) Snapshot() (*models.SiteStats, error) {
	var totalArticles int64
	err := s.db.Model(&models.Article{}).
		Where("status = ?", models.StatusPublished).
		Count(&totalArticles).Error
	if err != nil {
		return nil, translateErr("failed to count articles", err)
	}

	var totalViews int64
	if err := s.db.Model(&models.ArticleView{}).Count(&totalViews).Error; err != nil {
		return nil, translateErr("failed to count views", err)
	}

	var totalUsers int64
	if err := s.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return nil, translateErr("failed to count users", err)
	}

	var stats models.SiteStats
	err = s.db.First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.SiteStats{
			TotalArticles: int(totalArticles),
			TotalUsers:    int(totalUsers),
			TotalViews:    int(totalViews),
			AccuracyRate:  95.0,
		}
		if err := s.db.Create(&stats).Error; err != nil {
			return nil, translateErr("failed to create stats row", err)
		}
		return &stats, nil
	}
	if err != nil {
		return nil, translateErr("failed to load stats row", err)
	}

	stats.TotalArticles = int(totalArticles)
	stats.TotalUsers = int(totalUsers)
	stats.TotalViews = int(totalViews)
	err = s.db.Model(&stats).Updates(map[string]interface{}{
		"total_articles": stats.TotalArticles,
		"total_users":    stats.TotalUsers,
		"total_views":    stats.TotalViews,
	}).Error
	if err != nil {
		return nil, translateErr("failed to update stats row", err)
	}

	return &stats, nil
}
