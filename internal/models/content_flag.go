package models

import (
	"time"
)

// Content flag statuses
const (
	FlagPending  = "pending"
	FlagApproved = "approved"
	FlagRejected = "rejected"
)

// ContentFlag is a report against an article awaiting moderator review.
// A flag stays "pending" until exactly one approve/reject decision.
type ContentFlag struct {
	ID        uint    `json:"id" db:"id" gorm:"primaryKey"`
	ArticleID uint    `json:"article_id" db:"article_id" gorm:"not null;index"`
	Article   Article `json:"article,omitempty" gorm:"foreignKey:ArticleID"`

	Reason        string `json:"reason" db:"reason" gorm:"size:100;not null"`
	Description   string `json:"description" db:"description" gorm:"type:text;not null"`
	ReporterEmail string `json:"reporter_email" db:"reporter_email" gorm:"size:255"`

	Status string `json:"status" db:"status" gorm:"size:20;default:'pending';index"`

	FlaggedAt     time.Time  `json:"flagged_at" db:"flagged_at" gorm:"autoCreateTime"`
	ReviewedAt    *time.Time `json:"reviewed_at" db:"reviewed_at"`
	ReviewerNotes string     `json:"reviewer_notes" db:"reviewer_notes" gorm:"type:text"`
}

// TableName sets the table name for the ContentFlag model
func (ContentFlag) TableName() string {
	return "content_flags"
}
