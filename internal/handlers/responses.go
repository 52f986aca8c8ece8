// Package handlers contains the HTTP layer: request parsing, response
// shaping and the mapping from store errors to status codes.
package handlers

import (
	"time"

	"newsguard/internal/models"

	"github.com/russross/blackfriday/v2"
)

// CategorySummary is the category projection embedded in article items
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ArticleListItem is the article projection used by list endpoints
type ArticleListItem struct {
	ID             uint            `json:"id"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	Summary        string          `json:"summary"`
	Author         string          `json:"author"`
	Status         string          `json:"status"`
	FeaturedImage  string          `json:"featured_image"`
	ViewsCount     int             `json:"views_count"`
	LikesCount     int             `json:"likes_count"`
	DislikesCount  int             `json:"dislikes_count"`
	IsFeatured     bool            `json:"is_featured"`
	IsTrending     bool            `json:"is_trending"`
	IsBreakingNews bool            `json:"is_breaking_news"`
	PublishedAt    *time.Time      `json:"published_at"`
	CreatedAt      time.Time       `json:"created_at"`
	Category       CategorySummary `json:"category"`
}

// ArticleResponse is the full article projection for single reads
type ArticleResponse struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Content         string          `json:"content"`
	ContentHTML     string          `json:"content_html,omitempty"`
	Summary         string          `json:"summary"`
	Author          string          `json:"author"`
	Status          string          `json:"status"`
	MetaDescription string          `json:"meta_description"`
	FeaturedImage   string          `json:"featured_image"`
	ViewsCount      int             `json:"views_count"`
	LikesCount      int             `json:"likes_count"`
	DislikesCount   int             `json:"dislikes_count"`
	SharesCount     int             `json:"shares_count"`
	IsFeatured      bool            `json:"is_featured"`
	IsTrending      bool            `json:"is_trending"`
	IsBreakingNews  bool            `json:"is_breaking_news"`
	PublishedAt     *time.Time      `json:"published_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Category        CategorySummary `json:"category"`
}

// UserResponse is the user projection; the password hash never leaves the
// models layer.
type UserResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	ProfilePhoto string    `json:"profile_photo"`
	IsActive     bool      `json:"is_active"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// FlagResponse is the content-flag projection for the moderation queue
type FlagResponse struct {
	ID            uint       `json:"id"`
	ArticleID     uint       `json:"article_id"`
	ArticleTitle  string     `json:"article_title"`
	Reason        string     `json:"reason"`
	Description   string     `json:"description"`
	ReporterEmail string     `json:"reporter_email"`
	Status        string     `json:"status"`
	FlaggedAt     time.Time  `json:"flagged_at"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	ReviewerNotes string     `json:"reviewer_notes"`
}

func toCategorySummary(category models.Category) CategorySummary {
	return CategorySummary{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
	}
}

func toListItem(article models.Article) ArticleListItem {
	return ArticleListItem{
		ID:             article.ID,
		Title:          article.Title,
		Slug:           article.Slug,
		Summary:        article.Summary,
		Author:         article.Author,
		Status:         article.Status,
		FeaturedImage:  article.FeaturedImage,
		ViewsCount:     article.ViewsCount,
		LikesCount:     article.LikesCount,
		DislikesCount:  article.DislikesCount,
		IsFeatured:     article.IsFeatured,
		IsTrending:     article.IsTrending,
		IsBreakingNews: article.IsBreakingNews,
		PublishedAt:    article.PublishedAt,
		CreatedAt:      article.CreatedAt,
		Category:       toCategorySummary(article.Category),
	}
}

// toArticleResponse shapes the full projection. When renderHTML is set the
// markdown content is additionally rendered for direct display.
func toArticleResponse(article *models.Article, renderHTML bool) ArticleResponse {
	response := ArticleResponse{
		ID:              article.ID,
		Title:           article.Title,
		Slug:            article.Slug,
		Content:         article.Content,
		Summary:         article.Summary,
		Author:          article.Author,
		Status:          article.Status,
		MetaDescription: article.MetaDescription,
		FeaturedImage:   article.FeaturedImage,
		ViewsCount:      article.ViewsCount,
		LikesCount:      article.LikesCount,
		DislikesCount:   article.DislikesCount,
		SharesCount:     article.SharesCount,
		IsFeatured:      article.IsFeatured,
		IsTrending:      article.IsTrending,
		IsBreakingNews:  article.IsBreakingNews,
		PublishedAt:     article.PublishedAt,
		CreatedAt:       article.CreatedAt,
		UpdatedAt:       article.UpdatedAt,
		Category:        toCategorySummary(article.Category),
	}

	if renderHTML {
		response.ContentHTML = string(blackfriday.Run([]byte(article.Content)))
	}

	return response
}

func toFlagResponse(flag models.ContentFlag) FlagResponse {
	return FlagResponse{
		ID:            flag.ID,
		ArticleID:     flag.ArticleID,
		ArticleTitle:  flag.Article.Title,
		Reason:        flag.Reason,
		Description:   flag.Description,
		ReporterEmail: flag.ReporterEmail,
		Status:        flag.Status,
		FlaggedAt:     flag.FlaggedAt,
		ReviewedAt:    flag.ReviewedAt,
		ReviewerNotes: flag.ReviewerNotes,
	}
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		ProfilePhoto: user.ProfilePhoto,
		IsActive:     user.IsActive,
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt,
	}
}
