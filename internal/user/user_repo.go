package user

import (
	"strings"

	"gorm.io/gorm"
)

// Repository is the shared identity lookup surface. Every feature controller
// resolves the acting principal through it before touching its own tables.
type Repository interface {
	GetByEmail(email string) (*User, error)
	GetByID(id uint) (*User, error)
	PlayerByUserID(userID uint) (*Player, error)
	CoachByUserID(userID uint) (*Coach, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByEmail resolves a user by email, case-insensitively. Emails are stored
// lowercased at registration; the fold here covers tokens minted before that
// convention.
func (r *repository) GetByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByID(id uint) (*User, error) {
	var u User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) PlayerByUserID(userID uint) (*Player, error) {
	var p Player
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) CoachByUserID(userID uint) (*Coach, error) {
	var c Coach
	if err := r.db.Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
