package store

import (
	"errors"
	"testing"

	"newsguard/internal/models"
)

func TestCategoryListCountsPublishedOnly(t *testing.T) {
	db := setupTestDB(t)
	store := NewCategories(db)
	tech := createTestCategory(t, db, "Tech", "tech")
	createTestCategory(t, db, "Sports", "sports")

	createTestArticle(t, db, "One", "one", models.StatusPublished, tech.ID)
	createTestArticle(t, db, "Two", "two", models.StatusPublished, tech.ID)
	createTestArticle(t, db, "Hidden", "hidden", models.StatusDraft, tech.ID)

	items, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(items))
	}

	counts := map[string]int64{}
	for _, item := range items {
		counts[item.Slug] = item.ArticleCount
	}
	if counts["tech"] != 2 {
		t.Errorf("Expected 2 published articles in tech, got %d", counts["tech"])
	}
	if counts["sports"] != 0 {
		t.Errorf("Expected 0 articles in sports, got %d", counts["sports"])
	}
}

func TestCategoryUniqueSlug(t *testing.T) {
	db := setupTestDB(t)
	store := NewCategories(db)
	createTestCategory(t, db, "Tech", "tech")

	err := store.Create(&models.Category{Name: "Technology", Slug: "tech"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("Expected duplicate key, got %v", err)
	}
}

func TestGetBySlugMissing(t *testing.T) {
	db := setupTestDB(t)
	store := NewCategories(db)

	if _, err := store.GetBySlug("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	store := NewCategories(db)

	defaults := []models.Category{
		{Name: "Tech", Slug: "tech"},
		{Name: "Sports", Slug: "sports"},
	}

	if err := store.SeedDefaults(defaults); err != nil {
		t.Fatalf("SeedDefaults failed: %v", err)
	}
	if err := store.SeedDefaults(defaults); err != nil {
		t.Fatalf("Second SeedDefaults failed: %v", err)
	}

	count, _ := store.Count()
	if count != 2 {
		t.Errorf("Expected 2 categories after reseeding, got %d", count)
	}
}
