package auth

import (
	"time"

	"github.com/athleo/athleo-backend/internal/user"
)

type RegisterRequest struct {
	FullName        string `json:"full_name" binding:"required" example:"Jordan Miles"`
	Email           string `json:"email" binding:"required,email" example:"jordan@example.com"`
	Password        string `json:"password" binding:"required,min=8,max=72" example:"hoops4life"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password" example:"hoops4life"`
	Role            string `json:"role" binding:"required,oneof=PLAYER COACH SCOUT" example:"PLAYER"`
	Bio             string `json:"bio,omitempty"`
	Location        string `json:"location,omitempty"`
	Age             int    `json:"age,omitempty" binding:"omitempty,gte=0,lte=120"`
	Gender          string `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jordan@example.com"`
	Password string `json:"password" binding:"required" example:"hoops4life"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken          string `json:"refresh_token"`
	InvalidateAllSessions bool   `json:"invalidate_all_sessions"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	Age       *int    `json:"age,omitempty" binding:"omitempty,gte=0,lte=120"`
	Gender    *string `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	PushToken *string `json:"push_token,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=NewPassword"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      user.Role `json:"role"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	IsActive  bool      `json:"is_active"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FilterUserRecord(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		Location:  u.Location,
		Age:       u.Age,
		Gender:    u.Gender,
		IsActive:  u.IsActive,
		IsPublic:  u.IsPublic,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
