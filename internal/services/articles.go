// Package services holds the article lifecycle and moderation workflows
// on top of the store layer.
package services

import (
	"fmt"
	"strconv"
	"time"

	"newsguard/internal/models"
	"newsguard/internal/store"

	"gorm.io/gorm"
)

// Reaction kinds accepted by React.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
	ReactionShare   = "share"
)

// ArticleInput carries the fields of a create request.
type ArticleInput struct {
	Title           string
	Slug            string
	Content         string
	Summary         string
	Author          string
	Status          string
	MetaDescription string
	FeaturedImage   string
	IsFeatured      bool
	IsBreakingNews  bool
	CategoryID      uint
}

// ArticleUpdate carries a partial update; nil fields are left untouched.
type ArticleUpdate struct {
	Title           *string
	Content         *string
	Summary         *string
	Author          *string
	MetaDescription *string
	FeaturedImage   *string
	IsFeatured      *bool
	IsTrending      *bool
	IsBreakingNews  *bool
	CategoryID      *uint
	Status          *string
}

// ArticleService is the article lifecycle manager: slug assignment,
// publish-state transitions, counter increments and view auditing.
type ArticleService struct {
	articles   *store.Articles
	categories *store.Categories
}

// NewArticleService creates an article service over the given connection
func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{
		articles:   store.NewArticles(db),
		categories: store.NewCategories(db),
	}
}

// Articles exposes the underlying article store for read paths.
func (s *ArticleService) Articles() *store.Articles {
	return s.articles
}

// Categories exposes the underlying category store for read paths.
func (s *ArticleService) Categories() *store.Categories {
	return s.categories
}

// Create validates the category reference, assigns a slug and inserts the
// article. A derived slug that collides gets a nanosecond timestamp
// suffix, so repeated same-title creates each land on a distinct slug; an
// explicitly supplied slug that collides is a hard conflict.
func (s *ArticleService) Create(input ArticleInput) (*models.Article, error) {
	if input.Status == "" {
		input.Status = models.StatusDraft
	}
	if !models.IsValidStatus(input.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", input.Status, store.ErrInvalidArgument)
	}

	if _, err := s.categories.GetByID(input.CategoryID); err != nil {
		return nil, err
	}

	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Title)
		exists, err := s.articles.SlugExists(slug)
		if err != nil {
			return nil, err
		}
		if exists {
			slug = slug + "-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		}
	} else {
		exists, err := s.articles.SlugExists(slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("slug already exists: %w", store.ErrConflict)
		}
	}

	article := models.Article{
		Title:           input.Title,
		Slug:            slug,
		Content:         input.Content,
		Summary:         input.Summary,
		Author:          input.Author,
		Status:          input.Status,
		MetaDescription: input.MetaDescription,
		FeaturedImage:   input.FeaturedImage,
		IsFeatured:      input.IsFeatured,
		IsBreakingNews:  input.IsBreakingNews,
		CategoryID:      input.CategoryID,
	}

	if input.Status == models.StatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.articles.Create(&article); err != nil {
		return nil, err
	}

	return s.articles.GetByID(article.ID)
}

// Update applies a partial update. The first transition into "published"
// stamps published_at; it is never reset by later transitions, so an
// archive-then-republish keeps the original timestamp.
func (s *ArticleService) Update(id uint, update ArticleUpdate) (*models.Article, error) {
	article, err := s.articles.GetByID(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Content != nil {
		fields["content"] = *update.Content
	}
	if update.Summary != nil {
		fields["summary"] = *update.Summary
	}
	if update.Author != nil {
		fields["author"] = *update.Author
	}
	if update.MetaDescription != nil {
		fields["meta_description"] = *update.MetaDescription
	}
	if update.FeaturedImage != nil {
		fields["featured_image"] = *update.FeaturedImage
	}
	if update.IsFeatured != nil {
		fields["is_featured"] = *update.IsFeatured
	}
	if update.IsTrending != nil {
		fields["is_trending"] = *update.IsTrending
	}
	if update.IsBreakingNews != nil {
		fields["is_breaking_news"] = *update.IsBreakingNews
	}
	if update.CategoryID != nil {
		if _, err := s.categories.GetByID(*update.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *update.CategoryID
	}
	if update.Status != nil {
		if !models.IsValidStatus(*update.Status) {
			return nil, fmt.Errorf("invalid status %q: %w", *update.Status, store.ErrInvalidArgument)
		}
		fields["status"] = *update.Status

		if *update.Status == models.StatusPublished && article.PublishedAt == nil {
			fields["published_at"] = time.Now()
		}
	}

	if err := s.articles.Update(id, fields); err != nil {
		return nil, err
	}

	return s.articles.GetByID(id)
}

// Delete removes the article permanently.
func (s *ArticleService) Delete(id uint) error {
	return s.articles.Delete(id)
}

// Read returns a published article and records the view: one audit row
// plus a views_count increment, applied atomically. Drafts and archived
// articles are invisible here.
func (s *ArticleService) Read(id uint, ipAddress, userAgent string) (*models.Article, error) {
	if err := s.articles.RecordView(id, ipAddress, userAgent); err != nil {
		return nil, err
	}
	return s.articles.GetPublishedByID(id)
}

// React increments the like, dislike or share counter of a published
// article. Repeat calls from the same client increment again; no
// deduplication is performed.
func (s *ArticleService) React(id uint, reaction string) (*models.Article, error) {
	var column string
	switch reaction {
	case ReactionLike:
		column = "likes_count"
	case ReactionDislike:
		column = "dislikes_count"
	case ReactionShare:
		column = "shares_count"
	default:
		return nil, fmt.Errorf("unknown reaction %q: %w", reaction, store.ErrInvalidArgument)
	}

	return s.articles.IncrementCounter(id, column)
}
