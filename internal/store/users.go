package store

import (
	"errors"
	"time"

	"newsguard/internal/models"

	"gorm.io/gorm"
)

// Users provides typed access to user and admin rows
type Users struct {
	db *gorm.DB
}

// NewUsers creates a user store over the given connection
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create inserts the user. Username and email are both unique; the
// violation names whichever field collided.
func (s *Users) Create(user *models.User) error {
	err := s.db.Create(user).Error
	if err == nil {
		return nil
	}
	if isDuplicate(err) {
		var count int64
		s.db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count)
		if count > 0 {
			return duplicateKey("username")
		}
		return duplicateKey("email")
	}
	return translateErr("failed to create user", err)
}

// GetByID fetches one user by primary key.
func (s *Users) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, translateErr("failed to load user", err)
	}
	return &user, nil
}

// GetActiveByID fetches one active user by primary key. Inactive accounts
// are reported as missing.
func (s *Users) GetActiveByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, translateErr("failed to load user", err)
	}
	return &user, nil
}

// GetByLogin fetches a user by username, falling back to email.
func (s *Users) GetByLogin(login string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.Where("email = ?", login).First(&user).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, translateErr("failed to load user", err)
	}
	return &user, nil
}

// Update writes only the supplied fields and refreshes updated_at.
func (s *Users) Update(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	result := s.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return translateWrite(result.Error, "email")
	}
	if result.RowsAffected == 0 {
		return notFound("user")
	}
	return nil
}

// TouchLastLogin stamps last_login with the current time.
func (s *Users) TouchLastLogin(id uint) error {
	now := time.Now()
	return s.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("last_login", now).Error
}

// Count returns the total number of users.
func (s *Users) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, translateErr("failed to count users", err)
	}
	return count, nil
}

// AdminFor returns the admin record linked to the user, or a not-found
// error when the user holds no elevated privilege.
func (s *Users) AdminFor(userID uint) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.Where("user_id = ?", userID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("admin")
	}
	if err != nil {
		return nil, translateErr("failed to load admin", err)
	}
	return &admin, nil
}

// CreateAdmin grants a user elevated privilege.
func (s *Users) CreateAdmin(admin *models.Admin) error {
	if err := s.db.Create(admin).Error; err != nil {
		return translateWrite(err, "user_id")
	}
	return nil
}
