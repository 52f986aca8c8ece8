package handlers

import (
	"net/http"
	"strconv"

	"newsguard/internal/config"
	"newsguard/internal/models"
	"newsguard/internal/pagination"
	"newsguard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CategoriesHandler serves category listing and per-category article lists
type CategoriesHandler struct {
	categories *store.Categories
	articles   *store.Articles
	cfg        *config.Config
	log        zerolog.Logger
}

// NewCategoriesHandler creates the category handler set
func NewCategoriesHandler(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *CategoriesHandler {
	return &CategoriesHandler{
		categories: store.NewCategories(db),
		articles:   store.NewArticles(db),
		cfg:        cfg,
		log:        log.With().Str("handler", "categories").Logger(),
	}
}

// List handles GET /categories: all categories with live published-article
// counts.
func (h *CategoriesHandler) List(c *gin.Context) {
	items, err := h.categories.List()
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// Get handles GET /categories/:slug
func (h *CategoriesHandler) Get(c *gin.Context) {
	category, err := h.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	count, err := h.categories.CountPublishedArticles(category.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, store.CategoryWithCount{Category: *category, ArticleCount: count})
}

// Articles handles GET /category/:slug/articles: the published articles of
// one category, paginated.
func (h *CategoriesHandler) Articles(c *gin.Context) {
	category, err := h.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.cfg.DefaultPageSize)))
	page, limit = pagination.Clamp(page, limit, h.cfg.MaxPageSize)
	sort := c.DefaultQuery("sort", store.SortCreatedAt)

	filter := store.ArticleFilter{
		Status:     models.StatusPublished,
		CategoryID: category.ID,
	}

	result, err := h.articles.List(filter, sort, page, limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, pagination.MapPage(result, toListItem))
}

// Recent handles GET /category/:slug: the category with its most recent
// published articles inlined.
func (h *CategoriesHandler) Recent(c *gin.Context) {
	category, err := h.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit < 1 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}

	filter := store.ArticleFilter{
		Status:     models.StatusPublished,
		CategoryID: category.ID,
	}

	result, err := h.articles.List(filter, store.SortCreatedAt, 1, limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	items := make([]ArticleListItem, 0, len(result.Items))
	for _, article := range result.Items {
		items = append(items, toListItem(article))
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          category.ID,
		"name":        category.Name,
		"slug":        category.Slug,
		"description": category.Description,
		"created_at":  category.CreatedAt,
		"updated_at":  category.UpdatedAt,
		"articles":    items,
	})
}
