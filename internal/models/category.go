package models

import (
	"time"
)

// Category groups articles under a unique name and URL slug
type Category struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	Name        string    `json:"name" db:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	Articles []Article `json:"articles,omitempty" gorm:"foreignKey:CategoryID"`
}

// TableName sets the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
