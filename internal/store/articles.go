package store

import (
	"errors"
	"time"

	"newsguard/internal/models"
	"newsguard/internal/pagination"

	"gorm.io/gorm"
)

// Article sort keys accepted by List and ListByCategory.
const (
	SortCreatedAt  = "created_at"
	SortViewsCount = "views_count"
	SortTitle      = "title"
	SortFeatured   = "featured"
)

// ArticleFilter describes the predicates of a list query. Independent
// predicates combine with AND; the slugs within CategorySlugs combine
// with OR.
type ArticleFilter struct {
	Status        string
	CategoryID    uint
	CategorySlugs []string
	Search        string
	SearchAuthor  bool
	TrendingOnly  bool
}

// Articles provides typed access to article rows
type Articles struct {
	db *gorm.DB
}

// NewArticles creates an article store over the given connection
func NewArticles(db *gorm.DB) *Articles {
	return &Articles{db: db}
}

// Create inserts the article. Slug collisions surface as a duplicate-key
// error naming the slug field.
func (s *Articles) Create(article *models.Article) error {
	if err := s.db.Create(article).Error; err != nil {
		return translateWrite(err, "slug")
	}
	return nil
}

// GetByID fetches one article with its category preloaded.
func (s *Articles) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := s.db.Preload("Category").First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("article")
	}
	if err != nil {
		return nil, translateErr("failed to load article", err)
	}
	return &article, nil
}

// GetPublishedByID fetches one published article. Non-published articles
// are reported as missing; publication status is existence for public reads.
func (s *Articles) GetPublishedByID(id uint) (*models.Article, error) {
	var article models.Article
	err := s.db.Preload("Category").
		Where("id = ? AND status = ?", id, models.StatusPublished).
		First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("article")
	}
	if err != nil {
		return nil, translateErr("failed to load article", err)
	}
	return &article, nil
}

// GetBySlug fetches one article by its unique slug.
func (s *Articles) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := s.db.Preload("Category").Where("slug = ?", slug).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("article")
	}
	if err != nil {
		return nil, translateErr("failed to load article", err)
	}
	return &article, nil
}

// SlugExists reports whether any article already uses the slug.
func (s *Articles) SlugExists(slug string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, translateErr("failed to check slug", err)
	}
	return count > 0, nil
}

// Update writes only the supplied fields and refreshes updated_at.
func (s *Articles) Update(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	result := s.db.Model(&models.Article{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return translateWrite(result.Error, "slug")
	}
	if result.RowsAffected == 0 {
		return notFound("article")
	}
	return nil
}

// Delete removes the article row. Hard delete, no tombstone.
func (s *Articles) Delete(id uint) error {
	result := s.db.Delete(&models.Article{}, id)
	if result.Error != nil {
		return translateErr("failed to delete article", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("article")
	}
	return nil
}

// Count returns the number of articles matching the filter.
func (s *Articles) Count(filter ArticleFilter) (int64, error) {
	var count int64
	if err := s.applyFilter(s.db.Model(&models.Article{}), filter).Count(&count).Error; err != nil {
		return 0, translateErr("failed to count articles", err)
	}
	return count, nil
}

// List runs the composed query and returns one page of articles with their
// categories preloaded. Unknown sort keys are rejected.
func (s *Articles) List(filter ArticleFilter, sort string, page, limit int) (*pagination.Page[models.Article], error) {
	order, err := orderClause(sort)
	if err != nil {
		return nil, err
	}

	query := s.applyFilter(s.db.Model(&models.Article{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, translateErr("failed to count articles", err)
	}

	offset := (page - 1) * limit

	var articles []models.Article
	err = s.applyFilter(s.db.Model(&models.Article{}), filter).
		Preload("Category").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, translateErr("failed to list articles", err)
	}

	return pagination.NewPage(articles, total, page, limit), nil
}

// Recent returns the newest articles regardless of status.
func (s *Articles) Recent(limit int) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, translateErr("failed to list recent articles", err)
	}
	return articles, nil
}

// Trending returns published trending articles ordered by view count.
func (s *Articles) Trending(limit int) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.Preload("Category").
		Where("status = ? AND is_trending = ?", models.StatusPublished, true).
		Order("views_count DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, translateErr("failed to list trending articles", err)
	}
	return articles, nil
}

// IncrementCounter adds 1 to the named counter column of a published
// article. The column name must come from the caller's fixed set, never
// from user input.
func (s *Articles) IncrementCounter(id uint, column string) (*models.Article, error) {
	result := s.db.Model(&models.Article{}).
		Where("id = ? AND status = ?", id, models.StatusPublished).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return nil, translateErr("failed to increment "+column, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, notFound("article")
	}

	return s.GetByID(id)
}

// RecordView appends an audit row and increments views_count in one
// transaction; both land or neither does. Published articles only.
func (s *Articles) RecordView(id uint, ipAddress, userAgent string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Article{}).
			Where("id = ? AND status = ?", id, models.StatusPublished).
			UpdateColumn("views_count", gorm.Expr("views_count + 1"))
		if result.Error != nil {
			return translateErr("failed to increment views", result.Error)
		}
		if result.RowsAffected == 0 {
			return notFound("article")
		}

		view := models.ArticleView{
			ArticleID: id,
			IPAddress: ipAddress,
			UserAgent: userAgent,
		}
		if err := tx.Create(&view).Error; err != nil {
			return translateErr("failed to record view", err)
		}

		return nil
	})
}

// CountViews returns the total number of recorded article views.
func (s *Articles) CountViews() (int64, error) {
	var count int64
	if err := s.db.Model(&models.ArticleView{}).Count(&count).Error; err != nil {
		return 0, translateErr("failed to count views", err)
	}
	return count, nil
}

// ViewsForArticle returns the audit rows recorded for one article.
func (s *Articles) ViewsForArticle(id uint) ([]models.ArticleView, error) {
	var views []models.ArticleView
	if err := s.db.Where("article_id = ?", id).Order("viewed_at").Find(&views).Error; err != nil {
		return nil, translateErr("failed to list views", err)
	}
	return views, nil
}

func (s *Articles) applyFilter(query *gorm.DB, filter ArticleFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("articles.status = ?", filter.Status)
	}
	if filter.CategoryID != 0 {
		query = query.Where("articles.category_id = ?", filter.CategoryID)
	}
	if len(filter.CategorySlugs) > 0 {
		query = query.
			Joins("JOIN categories ON categories.id = articles.category_id").
			Where("categories.slug IN ?", filter.CategorySlugs)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		clause := "LOWER(articles.title) LIKE LOWER(?) OR LOWER(articles.content) LIKE LOWER(?) OR LOWER(articles.summary) LIKE LOWER(?)"
		args := []interface{}{term, term, term}
		if filter.SearchAuthor {
			clause += " OR LOWER(articles.author) LIKE LOWER(?)"
			args = append(args, term)
		}
		query = query.Where("("+clause+")", args...)
	}
	if filter.TrendingOnly {
		query = query.Where("articles.is_trending = ?", true)
	}
	return query
}

// orderClause maps a sort key to its SQL ordering. Unknown keys are an
// invalid-argument error rather than a silent default.
func orderClause(sort string) (string, error) {
	switch sort {
	case "", SortCreatedAt:
		return "articles.created_at DESC", nil
	case SortViewsCount:
		return "articles.views_count DESC", nil
	case SortTitle:
		return "articles.title ASC", nil
	case SortFeatured:
		return "articles.is_featured DESC, articles.created_at DESC", nil
	default:
		return "", invalidArgument("unknown sort key " + sort)
	}
}
