package store

import (
	"errors"

	"newsguard/internal/models"

	"gorm.io/gorm"
)

// CategoryWithCount pairs a category with its live published-article count.
type CategoryWithCount struct {
	models.Category
	ArticleCount int64 `json:"article_count"`
}

// Categories provides typed access to category rows
type Categories struct {
	db *gorm.DB
}

// NewCategories creates a category store over the given connection
func NewCategories(db *gorm.DB) *Categories {
	return &Categories{db: db}
}

// Create inserts the category. Name and slug are both unique.
func (s *Categories) Create(category *models.Category) error {
	if err := s.db.Create(category).Error; err != nil {
		return translateWrite(err, "slug")
	}
	return nil
}

// GetByID fetches one category by primary key.
func (s *Categories) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("category")
	}
	if err != nil {
		return nil, translateErr("failed to load category", err)
	}
	return &category, nil
}

// GetBySlug fetches one category by its unique slug.
func (s *Categories) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("category")
	}
	if err != nil {
		return nil, translateErr("failed to load category", err)
	}
	return &category, nil
}

// List returns all categories with the number of published articles each
// one holds at query time.
func (s *Categories) List() ([]CategoryWithCount, error) {
	var categories []models.Category
	if err := s.db.Order("name").Find(&categories).Error; err != nil {
		return nil, translateErr("failed to list categories", err)
	}

	items := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		var count int64
		err := s.db.Model(&models.Article{}).
			Where("category_id = ? AND status = ?", category.ID, models.StatusPublished).
			Count(&count).Error
		if err != nil {
			return nil, translateErr("failed to count articles for category "+category.Slug, err)
		}
		items = append(items, CategoryWithCount{Category: category, ArticleCount: count})
	}

	return items, nil
}

// Count returns the total number of categories.
func (s *Categories) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, translateErr("failed to count categories", err)
	}
	return count, nil
}

// CountPublishedArticles returns the live published-article count for one
// category.
func (s *Categories) CountPublishedArticles(id uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Article{}).
		Where("category_id = ? AND status = ?", id, models.StatusPublished).
		Count(&count).Error
	if err != nil {
		return 0, translateErr("failed to count articles", err)
	}
	return count, nil
}

// SeedDefaults creates any of the given categories whose slug does not
// exist yet. Used once at startup.
func (s *Categories) SeedDefaults(defaults []models.Category) error {
	for _, category := range defaults {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("slug = ?", category.Slug).Count(&count).Error; err != nil {
			return translateErr("failed to check category "+category.Slug, err)
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&category).Error; err != nil {
			return translateWrite(err, "slug")
		}
	}
	return nil
}
