package handlers

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"newsguard/internal/config"
	"newsguard/internal/models"
	"newsguard/internal/pagination"
	"newsguard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// PublicHandler serves the unauthenticated listing, search, trending,
// stats and newsletter endpoints.
type PublicHandler struct {
	articles    *store.Articles
	newsletters *store.Newsletters
	stats       *store.Stats
	cfg         *config.Config
	log         zerolog.Logger
}

// NewPublicHandler creates the public handler set
func NewPublicHandler(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		articles:    store.NewArticles(db),
		newsletters: store.NewNewsletters(db),
		stats:       store.NewStats(db),
		cfg:         cfg,
		log:         log.With().Str("handler", "public").Logger(),
	}
}

// Root handles GET /
func (h *PublicHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + h.cfg.ProjectName,
		"version": "1.0.0",
	})
}

// Health handles GET /health
func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.ProjectName,
	})
}

// ListArticles handles GET /articles: published articles with optional
// category, search and sort parameters.
func (h *PublicHandler) ListArticles(c *gin.Context) {
	page, limit := h.pageParams(c, h.cfg.MaxPageSize)
	sort := c.DefaultQuery("sort", store.SortCreatedAt)

	filter := store.ArticleFilter{
		Status:        models.StatusPublished,
		CategorySlugs: c.QueryArray("category"),
		Search:        c.Query("search"),
	}

	result, err := h.articles.List(filter, sort, page, limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, pagination.MapPage(result, toListItem))
}

// Trending handles GET /trending: published articles explicitly marked
// trending, most viewed first.
func (h *PublicHandler) Trending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.cfg.TrendingArticlesLimit)))
	if limit < 1 {
		limit = h.cfg.TrendingArticlesLimit
	}
	if limit > 50 {
		limit = 50
	}

	articles, err := h.articles.Trending(limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	items := make([]ArticleListItem, 0, len(articles))
	for _, article := range articles {
		items = append(items, toListItem(article))
	}

	c.JSON(http.StatusOK, items)
}

// Search handles GET /search: substring match over title, content,
// summary and author of published articles.
func (h *PublicHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if utf8.RuneCountInString(query) < h.cfg.SearchMinQueryLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Search query must be at least " + strconv.Itoa(h.cfg.SearchMinQueryLength) + " characters",
		})
		return
	}

	page, limit := h.pageParams(c, h.cfg.MaxSearchResults)

	filter := store.ArticleFilter{
		Status:        models.StatusPublished,
		CategorySlugs: c.QueryArray("category"),
		Search:        query,
		SearchAuthor:  true,
	}

	result, err := h.articles.List(filter, store.SortCreatedAt, page, limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	items := make([]ArticleListItem, 0, len(result.Items))
	for _, article := range result.Items {
		items = append(items, toListItem(article))
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": items,
		"total":   result.Total,
		"page":    result.Page,
		"limit":   result.Limit,
	})
}

// Stats handles GET /stats: the aggregate snapshot is recomputed on every
// read and persisted back. The public payload reports total_users as 0.
func (h *PublicHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Snapshot()
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_articles": stats.TotalArticles,
		"total_users":    0,
		"accuracy_rate":  stats.AccuracyRate,
	})
}

type newsletterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SubscribeNewsletter handles POST /newsletter. Subscribing an already
// active email succeeds without creating a second row.
func (h *PublicHandler) SubscribeNewsletter(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email address is required"})
		return
	}

	outcome, err := h.newsletters.Subscribe(req.Email)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	message := "Successfully subscribed to newsletter"
	switch outcome {
	case store.SubscribeAlreadyActive:
		message = "Email is already subscribed to newsletter"
	case store.SubscribeReactivated:
		message = "Newsletter subscription reactivated successfully"
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "success": true})
}

// UnsubscribeNewsletter handles DELETE /newsletter
func (h *PublicHandler) UnsubscribeNewsletter(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email address is required"})
		return
	}

	if err := h.newsletters.Unsubscribe(req.Email); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unsubscribed from newsletter", "success": true})
}

// pageParams parses and clamps the page/limit query values.
func (h *PublicHandler) pageParams(c *gin.Context, max int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.cfg.DefaultPageSize)))
	return pagination.Clamp(page, limit, max)
}
