package store

import (
	"errors"
	"fmt"
	"time"

	"newsguard/internal/models"

	"gorm.io/gorm"
)

// Flags provides typed access to content flags and their review
// transitions. A flag moves from pending to approved or rejected exactly
// once; the decision and its article side effect land in one transaction.
type Flags struct {
	db *gorm.DB
}

// NewFlags creates a flag store over the given connection
func NewFlags(db *gorm.DB) *Flags {
	return &Flags{db: db}
}

// Create files a pending flag against the article and forces the article
// into the flagged state so it leaves public listings until reviewed.
func (s *Flags) Create(flag *models.ContentFlag) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var article models.Article
		err := tx.First(&article, flag.ArticleID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("article")
		}
		if err != nil {
			return translateErr("failed to load article", err)
		}

		flag.Status = models.FlagPending
		if err := tx.Create(flag).Error; err != nil {
			return translateErr("failed to create flag", err)
		}

		err = tx.Model(&models.Article{}).Where("id = ?", article.ID).
			Updates(map[string]interface{}{
				"status":     models.StatusFlagged,
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return translateErr("failed to flag article", err)
		}

		return nil
	})
}

// GetByID fetches one flag with its article preloaded.
func (s *Flags) GetByID(id uint) (*models.ContentFlag, error) {
	var flag models.ContentFlag
	err := s.db.Preload("Article").First(&flag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("flag")
	}
	if err != nil {
		return nil, translateErr("failed to load flag", err)
	}
	return &flag, nil
}

// ListPending returns all flags awaiting review, oldest first.
func (s *Flags) ListPending() ([]models.ContentFlag, error) {
	var flags []models.ContentFlag
	err := s.db.Preload("Article").
		Where("status = ?", models.FlagPending).
		Order("flagged_at").
		Find(&flags).Error
	if err != nil {
		return nil, translateErr("failed to list flags", err)
	}
	return flags, nil
}

// Approve moves a pending flag to approved. An article that was flagged
// goes back to published; approval restores visibility regardless of what
// the status was before the flag, since the pre-flag status is not
// recorded anywhere.
func (s *Flags) Approve(id uint, notes string) error {
	return s.review(id, models.FlagApproved, notes)
}

// Reject moves a pending flag to rejected and archives the article
// regardless of its prior state.
func (s *Flags) Reject(id uint, notes string) error {
	return s.review(id, models.FlagRejected, notes)
}

func (s *Flags) review(id uint, decision, notes string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var flag models.ContentFlag
		err := tx.First(&flag, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("flag")
		}
		if err != nil {
			return translateErr("failed to load flag", err)
		}

		if flag.Status != models.FlagPending {
			return fmt.Errorf("flag already reviewed: %w", ErrConflict)
		}

		now := time.Now()
		err = tx.Model(&flag).Updates(map[string]interface{}{
			"status":         decision,
			"reviewed_at":    now,
			"reviewer_notes": notes,
		}).Error
		if err != nil {
			return translateErr("failed to update flag", err)
		}

		var article models.Article
		err = tx.First(&article, flag.ArticleID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("article")
		}
		if err != nil {
			return translateErr("failed to load article", err)
		}

		var newStatus string
		switch decision {
		case models.FlagApproved:
			if article.Status != models.StatusFlagged {
				return nil
			}
			newStatus = models.StatusPublished
		case models.FlagRejected:
			newStatus = models.StatusArchived
		}

		err = tx.Model(&models.Article{}).Where("id = ?", article.ID).
			Updates(map[string]interface{}{
				"status":     newStatus,
				"updated_at": now,
			}).Error
		if err != nil {
			return translateErr("failed to update article status", err)
		}

		return nil
	})
}
