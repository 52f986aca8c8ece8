package models

import (
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. The password hash is never serialized.
type User struct {
	ID           uint   `json:"id" db:"id" gorm:"primaryKey"`
	Username     string `json:"username" db:"username" gorm:"size:50;uniqueIndex;not null"`
	Email        string `json:"email" db:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `json:"-" db:"password_hash" gorm:"size:255;not null"`
	FirstName    string `json:"first_name" db:"first_name" gorm:"size:50"`
	LastName     string `json:"last_name" db:"last_name" gorm:"size:50"`
	ProfilePhoto string `json:"profile_photo" db:"profile_photo" gorm:"size:500"`

	IsActive   bool `json:"is_active" db:"is_active" gorm:"default:true"`
	IsVerified bool `json:"is_verified" db:"is_verified" gorm:"default:false"`

	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
	LastLogin *time.Time `json:"last_login" db:"last_login"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}

// SetPassword hashes the plaintext password onto the user.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword compares the plaintext password with the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// FullName returns "first last" when both are set, otherwise the username.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// Admin marks a user as having elevated privileges
type Admin struct {
	ID     uint `json:"id" db:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" db:"user_id" gorm:"uniqueIndex;not null"`
	User   User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Role        string         `json:"role" db:"role" gorm:"size:20;default:'admin'"`
	Permissions pq.StringArray `json:"permissions" db:"permissions" gorm:"type:text[]"`

	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	CreatedByID *uint     `json:"created_by_id" db:"created_by_id"`
}

// TableName sets the table name for the Admin model
func (Admin) TableName() string {
	return "admins"
}
