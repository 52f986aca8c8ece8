package services

import (
	"strings"
	"testing"

	"newsguard/internal/models"
	"newsguard/internal/store"

	"github.com/stretchr/testify/assert"
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

func setupCategory(t *testing.T, db *gorm.DB) *models.Category {
	category := &models.Category{Name: "Tech", Slug: "tech"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return category
}

func TestCreateDerivesSlug(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)
	category := setupCategory(t, db)

	article, err := service.Create(ArticleInput{
		Title:      "Hi There",
		Content:    "body",
		Author:     "alice",
		Status:     models.StatusDraft,
		CategoryID: category.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, "hi-there", article.Slug)
	assert.Nil(t, article.PublishedAt)
}

func TestCreateDisambiguatesDerivedSlug(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)
	category := setupCategory(t, db)

	// Back-to-back creates with the same title all land inside the same
	// second; every one must still get a distinct slug.
	slugs := map[string]bool{}
	for i := 0; i < 3; i++ {
		article, err := service.Create(ArticleInput{
			Title: "Hi There", Content: "c", Author: "a", CategoryID: category.ID,
		})
		if err != nil {
			t.Fatalf("Create %d failed: %v", i+1, err)
		}
		if slugs[article.Slug] {
			t.Fatalf("Slug %q assigned twice", article.Slug)
		}
		slugs[article.Slug] = true
		if i > 0 && !strings.HasPrefix(article.Slug, "hi-there-") {
			t.Errorf("Expected a suffixed slug, got %q", article.Slug)
		}
	}
}

func TestCreateExplicitSlugCollisionIsConflict(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)
	category := setupCategory(t, db)

	_, err := service.Create(ArticleInput{
		Title: "First", Slug: "taken", Content: "c", Author: "a", CategoryID: category.ID,
	})
	assert.NoError(t, err)

	_, err = service.Create(ArticleInput{
		Title: "Second", Slug: "taken", Content: "c", Author: "a", CategoryID: category.ID,
	})
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestCreateMissingCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)

	_, err := service.Create(ArticleInput{
		Title: "Orphan", Content: "c", Author: "a", CategoryID: 9999,
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreatePublishedStampsPublishedAt(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)
	category := setupCategory(t, db)

	article, err := service.Create(ArticleInput{
		Title: "Live", Content: "c", Author: "a",
		Status: models.StatusPublished, CategoryID: category.ID,
	})
	assert.NoError(t, err)
	assert.NotNil(t, article.PublishedAt)
}

func TestPublishedAtSetOnceAndNeverReset(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)
	category := setupCategory(t, db)

	article, err := service.Create(ArticleInput{
		Title: "Hi There", Content: "c", Author: "a",
		Status: models.StatusDraft, CategoryID: category.ID,
	})
	assert.NoError(t, err)
	assert.Nil(t, article.PublishedAt)

	published := models.StatusPublished
	article, err = service.Update(article.ID, ArticleUpdate{Status: &published})
	assert.NoError(t, err)
	assert.NotNil(t, article.PublishedAt)
	firstPublish := *article.PublishedAt

	archived := models.StatusArchived
	article, err = service.Update(article.ID, ArticleUpdate{Status: &archived})
	assert.NoError(t, err)
	assert.NotNil(t, article.PublishedAt)

	article, err = service.Update(article.ID, ArticleUpdate{Status: &published})
	assert.NoError(t, err)
	assert.Equal(t, firstPublish.Unix(), article.PublishedAt.Unix())
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)
	category := setupCategory(t, db)

	article, err := service.Create(ArticleInput{
		Title: "Hi", Content: "c", Author: "a", CategoryID: category.ID,
	})
	assert.NoError(t, err)

	bogus := "vanished"
	_, err = service.Update(article.ID, ArticleUpdate{Status: &bogus})
	assert.ErrorIs(t, err, store.ErrInvalidArgument)
}

func TestReadRecordsViews(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)
	category := setupCategory(t, db)

	article, err := service.Create(ArticleInput{
		Title: "Hi There", Content: "c", Author: "a",
		Status: models.StatusPublished, CategoryID: category.ID,
	})
	assert.NoError(t, err)

	for i := 0; i < 3; i++ {
		read, err := service.Read(article.ID, "203.0.113.7", "agent")
		assert.NoError(t, err)
		assert.Equal(t, i+1, read.ViewsCount)
	}

	views, err := service.Articles().ViewsForArticle(article.ID)
	assert.NoError(t, err)
	assert.Len(t, views, 3)
}

func TestReadDraftIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)
	category := setupCategory(t, db)

	article, err := service.Create(ArticleInput{
		Title: "Hidden", Content: "c", Author: "a",
		Status: models.StatusDraft, CategoryID: category.ID,
	})
	assert.NoError(t, err)

	_, err = service.Read(article.ID, "203.0.113.7", "agent")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReactIncrementsWithoutDeduplication(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)
	category := setupCategory(t, db)

	article, err := service.Create(ArticleInput{
		Title: "Hi", Content: "c", Author: "a",
		Status: models.StatusPublished, CategoryID: category.ID,
	})
	assert.NoError(t, err)

	for i := 0; i < 2; i++ {
		article, err = service.React(article.ID, ReactionLike)
		assert.NoError(t, err)
	}
	assert.Equal(t, 2, article.LikesCount)

	article, err = service.React(article.ID, ReactionShare)
	assert.NoError(t, err)
	assert.Equal(t, 1, article.SharesCount)

	_, err = service.React(article.ID, "applaud")
	assert.ErrorIs(t, err, store.ErrInvalidArgument)
}

func TestModerationWorkflow(t *testing.T) {
	db := setupTestDB(t)
	service := NewArticleService(db)
	moderation := NewModerationService(db)
	category := setupCategory(t, db)

	article, err := service.Create(ArticleInput{
		Title: "Contested", Content: "c", Author: "a",
		Status: models.StatusPublished, CategoryID: category.ID,
	})
	assert.NoError(t, err)

	flag, err := moderation.Report(FlagInput{
		ArticleID:   article.ID,
		Reason:      "misinformation",
		Description: "unsourced claims",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.FlagPending, flag.Status)

	// Intake pulls the article out of public view
	_, err = service.Read(article.ID, "203.0.113.7", "agent")
	assert.ErrorIs(t, err, store.ErrNotFound)

	pending, err := moderation.Pending()
	assert.NoError(t, err)
	assert.Len(t, pending, 1)

	assert.NoError(t, moderation.Approve(flag.ID, "verified"))

	restored, err := service.Articles().GetByID(article.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPublished, restored.Status)

	assert.ErrorIs(t, moderation.Approve(flag.ID, "again"), store.ErrConflict)
}
