package handlers

import (
	"net/http"
	"strconv"

	"newsguard/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ArticlesHandler serves single-article reads, reactions and flag intake
type ArticlesHandler struct {
	service    *services.ArticleService
	moderation *services.ModerationService
	log        zerolog.Logger
}

// NewArticlesHandler creates the article handler set
func NewArticlesHandler(db *gorm.DB, log zerolog.Logger) *ArticlesHandler {
	return &ArticlesHandler{
		service:    services.NewArticleService(db),
		moderation: services.NewModerationService(db),
		log:        log.With().Str("handler", "articles").Logger(),
	}
}

// Get handles GET /articles/:id: returns the published article and records
// the view (audit row plus counter) in one step.
func (h *ArticlesHandler) Get(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	article, err := h.service.Read(id, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article, true))
}

// Like handles POST /articles/:id/like
func (h *ArticlesHandler) Like(c *gin.Context) {
	h.react(c, services.ReactionLike)
}

// Dislike handles POST /articles/:id/dislike
func (h *ArticlesHandler) Dislike(c *gin.Context) {
	h.react(c, services.ReactionDislike)
}

// Share handles POST /articles/:id/share
func (h *ArticlesHandler) Share(c *gin.Context) {
	h.react(c, services.ReactionShare)
}

func (h *ArticlesHandler) react(c *gin.Context, reaction string) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	article, err := h.service.React(id, reaction)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	var message string
	switch reaction {
	case services.ReactionLike:
		message = "Article liked! Total likes: " + strconv.Itoa(article.LikesCount)
	case services.ReactionDislike:
		message = "Article disliked! Total dislikes: " + strconv.Itoa(article.DislikesCount)
	case services.ReactionShare:
		message = "Article shared! Total shares: " + strconv.Itoa(article.SharesCount)
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "success": true})
}

type flagRequest struct {
	Reason        string `json:"reason" binding:"required,max=100"`
	Description   string `json:"description" binding:"required"`
	ReporterEmail string `json:"reporter_email" binding:"omitempty,email"`
}

// Flag handles POST /articles/:id/flag: files a report and pulls the
// article out of public view pending moderation.
func (h *ArticlesHandler) Flag(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reason and description are required"})
		return
	}

	flag, err := h.moderation.Report(services.FlagInput{
		ArticleID:     id,
		Reason:        req.Reason,
		Description:   req.Description,
		ReporterEmail: req.ReporterEmail,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toFlagResponse(*flag))
}

func (h *ArticlesHandler) articleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return 0, false
	}
	return uint(id), true
}
