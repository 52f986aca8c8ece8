package store

import (
	"testing"

	"newsguard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	category := &models.Category{Name: name, Slug: slug, Description: name + " news"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return category
}

func createTestArticle(t *testing.T, db *gorm.DB, title, slug, status string, categoryID uint) *models.Article {
	article := &models.Article{
		Title:      title,
		Slug:       slug,
		Content:    "Content of " + title,
		Summary:    "Summary of " + title,
		Author:     "Test Author",
		Status:     status,
		CategoryID: categoryID,
	}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("Failed to create article: %v", err)
	}
	return article
}
