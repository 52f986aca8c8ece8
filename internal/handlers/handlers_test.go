package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsguard/internal/config"
	"newsguard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		ProjectName:           "NewsGuard API",
		DefaultPageSize:       10,
		MaxPageSize:           100,
		MaxSearchResults:      100,
		SearchMinQueryLength:  2,
		TrendingArticlesLimit: 10,
	}
	log := zerolog.Nop()

	public := NewPublicHandler(db, cfg, log)
	articles := NewArticlesHandler(db, log)

	r := gin.New()
	r.GET("/health", public.Health)
	api := r.Group("/api")
	api.GET("/articles", public.ListArticles)
	api.GET("/articles/:id", articles.Get)
	api.POST("/articles/:id/like", articles.Like)
	api.POST("/articles/:id/flag", articles.Flag)
	api.GET("/search", public.Search)
	api.GET("/stats", public.Stats)
	api.POST("/newsletter", public.SubscribeNewsletter)

	return r, db
}

func seedArticle(t *testing.T, db *gorm.DB, title, slug, status string) *models.Article {
	category := &models.Category{Name: "Tech " + slug, Slug: "tech-" + slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	article := &models.Article{
		Title:      title,
		Slug:       slug,
		Content:    "## Heading\n\nBody text.",
		Author:     "alice",
		Status:     status,
		CategoryID: category.ID,
	}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("Failed to create article: %v", err)
	}
	return article
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestListArticlesHidesDrafts(t *testing.T) {
	r, db := setupTestRouter(t)
	seedArticle(t, db, "Visible", "visible", models.StatusPublished)
	seedArticle(t, db, "Hidden", "hidden", models.StatusDraft)

	w := doJSON(r, http.MethodGet, "/api/articles", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []ArticleListItem `json:"items"`
		Total int64             `json:"total"`
		Page  int               `json:"page"`
		Pages int               `json:"pages"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Total)
	assert.Len(t, body.Items, 1)
	assert.Equal(t, "Visible", body.Items[0].Title)
	assert.Equal(t, 1, body.Pages)
}

func TestGetArticleRecordsViewAndRendersHTML(t *testing.T) {
	r, db := setupTestRouter(t)
	article := seedArticle(t, db, "Visible", "visible", models.StatusPublished)

	w := doJSON(r, http.MethodGet, "/api/articles/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body ArticleResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.ViewsCount)
	assert.Contains(t, body.ContentHTML, "<h2")

	var views int64
	db.Model(&models.ArticleView{}).Where("article_id = ?", article.ID).Count(&views)
	assert.Equal(t, int64(1), views)
}

func TestGetDraftArticleIsNotFound(t *testing.T) {
	r, db := setupTestRouter(t)
	seedArticle(t, db, "Hidden", "hidden", models.StatusDraft)

	w := doJSON(r, http.MethodGet, "/api/articles/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeArticle(t *testing.T) {
	r, db := setupTestRouter(t)
	seedArticle(t, db, "Visible", "visible", models.StatusPublished)

	w := doJSON(r, http.MethodPost, "/api/articles/1/like", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Article liked! Total likes: 1", body["message"])
	assert.Equal(t, true, body["success"])
}

func TestSearchRejectsShortQuery(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/search?q=a", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A single multi-byte rune is still one character, not two
	w = doJSON(r, http.MethodGet, "/api/search?q=%C3%A9", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsReportsZeroUsers(t *testing.T) {
	r, db := setupTestRouter(t)
	seedArticle(t, db, "Visible", "visible", models.StatusPublished)

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", IsActive: true}
	assert.NoError(t, db.Create(user).Error)

	w := doJSON(r, http.MethodGet, "/api/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["total_articles"])
	assert.Equal(t, float64(0), body["total_users"])
}

func TestNewsletterSubscribe(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/newsletter", gin.H{"email": "reader@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Successfully subscribed to newsletter", body["message"])

	w = doJSON(r, http.MethodPost, "/api/newsletter", gin.H{"email": "reader@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Email is already subscribed to newsletter", body["message"])
}

func TestNewsletterRejectsBadEmail(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/newsletter", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlagArticlePullsItFromPublicView(t *testing.T) {
	r, db := setupTestRouter(t)
	seedArticle(t, db, "Contested", "contested", models.StatusPublished)

	w := doJSON(r, http.MethodPost, "/api/articles/1/flag", gin.H{
		"reason":      "misinformation",
		"description": "unsourced claims",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var flag FlagResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &flag))
	assert.Equal(t, models.FlagPending, flag.Status)

	w = doJSON(r, http.MethodGet, "/api/articles/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlagRequiresReason(t *testing.T) {
	r, db := setupTestRouter(t)
	seedArticle(t, db, "Contested", "contested", models.StatusPublished)

	w := doJSON(r, http.MethodPost, "/api/articles/1/flag", gin.H{"description": "no reason given"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
