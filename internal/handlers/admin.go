package handlers

import (
	"net/http"
	"strconv"

	"newsguard/internal/config"
	"newsguard/internal/models"
	"newsguard/internal/pagination"
	"newsguard/internal/services"
	"newsguard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AdminHandler serves the elevated management routes: article CRUD across
// all statuses, the moderation queue and the dashboard aggregates.
type AdminHandler struct {
	service     *services.ArticleService
	moderation  *services.ModerationService
	categories  *store.Categories
	newsletters *store.Newsletters
	cfg         *config.Config
	log         zerolog.Logger
}

// NewAdminHandler creates the admin handler set
func NewAdminHandler(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service:     services.NewArticleService(db),
		moderation:  services.NewModerationService(db),
		categories:  store.NewCategories(db),
		newsletters: store.NewNewsletters(db),
		cfg:         cfg,
		log:         log.With().Str("handler", "admin").Logger(),
	}
}

// Categories handles GET /admin/categories: the plain category list for
// editor dropdowns, without article counts.
func (h *AdminHandler) Categories(c *gin.Context) {
	items, err := h.categories.List()
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	type entry struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}

	out := make([]entry, 0, len(items))
	for _, item := range items {
		out = append(out, entry{
			ID:          item.ID,
			Name:        item.Name,
			Slug:        item.Slug,
			Description: item.Description,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": out, "total": len(out)})
}

// Stats handles GET /admin/stats: the dashboard aggregates including
// per-status article counts and the ten most recent articles.
func (h *AdminHandler) Stats(c *gin.Context) {
	articles := h.service.Articles()

	totals := map[string]int64{}
	for _, status := range []string{"", models.StatusPublished, models.StatusDraft, models.StatusFlagged} {
		count, err := articles.Count(store.ArticleFilter{Status: status})
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		totals[status] = count
	}

	categoryCount, err := h.categories.Count()
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	subscribers, err := h.newsletters.CountActive()
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	views, err := articles.CountViews()
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	recent, err := articles.Recent(10)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	recentItems := make([]ArticleListItem, 0, len(recent))
	for _, article := range recent {
		recentItems = append(recentItems, toListItem(article))
	}

	c.JSON(http.StatusOK, gin.H{
		"total_articles":         totals[""],
		"published_articles":     totals[models.StatusPublished],
		"draft_articles":         totals[models.StatusDraft],
		"flagged_articles":       totals[models.StatusFlagged],
		"total_categories":       categoryCount,
		"newsletter_subscribers": subscribers,
		"total_views":            views,
		"accuracy_rate":          95.0,
		"recent_articles":        recentItems,
	})
}

// ListArticles handles GET /admin/articles: every status, optionally
// narrowed to one.
func (h *AdminHandler) ListArticles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.cfg.DefaultPageSize)))
	page, limit = pagination.Clamp(page, limit, h.cfg.MaxPageSize)

	status := c.Query("status")
	if status != "" && !models.IsValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	result, err := h.service.Articles().List(store.ArticleFilter{Status: status}, store.SortCreatedAt, page, limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, pagination.MapPage(result, toListItem))
}

type articleCreateRequest struct {
	Title           string `json:"title" binding:"required,max=200"`
	Slug            string `json:"slug"`
	Content         string `json:"content" binding:"required"`
	Summary         string `json:"summary"`
	Author          string `json:"author" binding:"required,max=100"`
	Status          string `json:"status"`
	MetaDescription string `json:"meta_description" binding:"max=160"`
	FeaturedImage   string `json:"featured_image"`
	IsFeatured      bool   `json:"is_featured"`
	IsBreakingNews  bool   `json:"is_breaking_news"`
	CategoryID      uint   `json:"category_id" binding:"required"`
}

// CreateArticle handles POST /admin/articles
func (h *AdminHandler) CreateArticle(c *gin.Context) {
	var req articleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, content, author and category_id are required"})
		return
	}

	article, err := h.service.Create(services.ArticleInput{
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         req.Content,
		Summary:         req.Summary,
		Author:          req.Author,
		Status:          req.Status,
		MetaDescription: req.MetaDescription,
		FeaturedImage:   req.FeaturedImage,
		IsFeatured:      req.IsFeatured,
		IsBreakingNews:  req.IsBreakingNews,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toArticleResponse(article, false))
}

type articleUpdateRequest struct {
	Title           *string `json:"title"`
	Content         *string `json:"content"`
	Summary         *string `json:"summary"`
	Author          *string `json:"author"`
	MetaDescription *string `json:"meta_description"`
	FeaturedImage   *string `json:"featured_image"`
	IsFeatured      *bool   `json:"is_featured"`
	IsTrending      *bool   `json:"is_trending"`
	IsBreakingNews  *bool   `json:"is_breaking_news"`
	CategoryID      *uint   `json:"category_id"`
	Status          *string `json:"status"`
}

// UpdateArticle handles PUT /admin/articles/:id: partial update; only the
// supplied fields are written.
func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req articleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update payload"})
		return
	}

	article, err := h.service.Update(id, services.ArticleUpdate{
		Title:           req.Title,
		Content:         req.Content,
		Summary:         req.Summary,
		Author:          req.Author,
		MetaDescription: req.MetaDescription,
		FeaturedImage:   req.FeaturedImage,
		IsFeatured:      req.IsFeatured,
		IsTrending:      req.IsTrending,
		IsBreakingNews:  req.IsBreakingNews,
		CategoryID:      req.CategoryID,
		Status:          req.Status,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article, false))
}

// DeleteArticle handles DELETE /admin/articles/:id
func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully", "success": true})
}

// Flagged handles GET /admin/moderation/flagged: the pending review queue.
func (h *AdminHandler) Flagged(c *gin.Context) {
	flags, err := h.moderation.Pending()
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	items := make([]FlagResponse, 0, len(flags))
	for _, flag := range flags {
		items = append(items, toFlagResponse(flag))
	}

	c.JSON(http.StatusOK, items)
}

type moderationRequest struct {
	Notes string `json:"notes"`
}

// ApproveFlag handles POST /admin/moderation/:id/approve
func (h *AdminHandler) ApproveFlag(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req moderationRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.moderation.Approve(id, req.Notes); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content approved successfully", "success": true})
}

// RejectFlag handles POST /admin/moderation/:id/reject
func (h *AdminHandler) RejectFlag(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req moderationRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.moderation.Reject(id, req.Notes); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content rejected and archived", "success": true})
}

func (h *AdminHandler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
