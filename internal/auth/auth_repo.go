package auth

import (
	"fmt"
	"time"

	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUserWithProfile(u *user.User) error
	GetUserByEmail(email string) (*user.User, error)
	GetUserByID(id uint) (*user.User, error)
	UpdateUser(u *user.User) error
	ToggleVisibility(userID uint) (bool, error)

	SaveRefreshToken(t *user.RefreshToken) error
	GetRefreshToken(tokenString string) (*user.RefreshToken, error)
	InvalidateRefreshToken(tokenString string) error
	InvalidateAllRefreshTokensForUser(userID uint) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

// CreateUserWithProfile inserts the user together with its role extension row
// (players/coaches) in one transaction, so a registration is never half-done.
func (r *authRepository) CreateUserWithProfile(u *user.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		switch u.Role {
		case user.RolePlayer:
			return tx.Create(&user.Player{UserID: u.ID}).Error
		case user.RoleCoach:
			return tx.Create(&user.Coach{UserID: u.ID}).Error
		}
		return nil
	})
}

func (r *authRepository) GetUserByEmail(email string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) UpdateUser(u *user.User) error {
	return r.db.Save(u).Error
}

// ToggleVisibility flips is_public with a read inside the same transaction.
// Concurrent toggles race as last-write-wins, which is acceptable here.
func (r *authRepository) ToggleVisibility(userID uint) (bool, error) {
	var next bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var u user.User
		if err := tx.First(&u, userID).Error; err != nil {
			return err
		}
		next = !u.IsPublic
		return tx.Model(&user.User{}).Where("id = ?", userID).Update("is_public", next).Error
	})
	return next, err
}

func (r *authRepository) SaveRefreshToken(t *user.RefreshToken) error {
	return r.db.Create(t).Error
}

func (r *authRepository) GetRefreshToken(tokenString string) (*user.RefreshToken, error) {
	var rt user.RefreshToken
	if err := r.db.Where("token = ? AND expires_at > ? AND revoked = ?", tokenString, time.Now(), false).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *authRepository) InvalidateRefreshToken(tokenString string) error {
	return r.db.Model(&user.RefreshToken{}).Where("token = ?", tokenString).Update("revoked", true).Error
}

func (r *authRepository) InvalidateAllRefreshTokensForUser(userID uint) error {
	result := r.db.Model(&user.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	if result.Error != nil {
		return fmt.Errorf("failed to invalidate all refresh tokens: %w", result.Error)
	}
	return nil
}
