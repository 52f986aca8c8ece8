package store

import (
	"errors"
	"testing"

	"newsguard/internal/models"
)

func TestReadOnClosedConnectionIsUnavailable(t *testing.T) {
	db := setupTestDB(t)
	store := NewArticles(db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying connection: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("Failed to close connection: %v", err)
	}

	if _, err := store.GetByID(1); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected storage unavailable, got %v", err)
	}
	if _, err := store.Count(ArticleFilter{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected storage unavailable, got %v", err)
	}
}

func TestWriteOnClosedConnectionIsUnavailable(t *testing.T) {
	db := setupTestDB(t)
	store := NewCategories(db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying connection: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("Failed to close connection: %v", err)
	}

	err = store.Create(&models.Category{Name: "Tech", Slug: "tech"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected storage unavailable, got %v", err)
	}
}
