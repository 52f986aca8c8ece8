package services

import (
	"newsguard/internal/models"
	"newsguard/internal/store"

	"gorm.io/gorm"
)

// FlagInput carries a new content report.
type FlagInput struct {
	ArticleID     uint
	Reason        string
	Description   string
	ReporterEmail string
}

// ModerationService runs the flag review workflow. Each flag is decided
// exactly once; the decision updates the flagged article's status as a
// side effect.
type ModerationService struct {
	flags *store.Flags
}

// NewModerationService creates a moderation service over the given connection
func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{flags: store.NewFlags(db)}
}

// Report files a pending flag and pulls the article out of public view.
func (s *ModerationService) Report(input FlagInput) (*models.ContentFlag, error) {
	flag := models.ContentFlag{
		ArticleID:     input.ArticleID,
		Reason:        input.Reason,
		Description:   input.Description,
		ReporterEmail: input.ReporterEmail,
	}

	if err := s.flags.Create(&flag); err != nil {
		return nil, err
	}

	return s.flags.GetByID(flag.ID)
}

// Pending returns the review queue, oldest first.
func (s *ModerationService) Pending() ([]models.ContentFlag, error) {
	return s.flags.ListPending()
}

// Approve decides a pending flag in the article's favor: the flag becomes
// approved and a flagged article returns to published.
func (s *ModerationService) Approve(flagID uint, notes string) error {
	return s.flags.Approve(flagID, notes)
}

// Reject decides a pending flag against the article: the flag becomes
// rejected and the article is archived.
func (s *ModerationService) Reject(flagID uint, notes string) error {
	return s.flags.Reject(flagID, notes)
}
