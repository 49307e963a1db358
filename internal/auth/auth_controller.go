package auth

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/pkg/token"
	"github.com/athleo/athleo-backend/pkg/utils"
	"github.com/athleo/athleo-backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
	}
}

func (ac *AuthController) generateAndSaveTokens(u *user.User) (string, string, error) {
	accessToken, err := token.GenerateAccessToken(u.ID, u.Email, string(u.Role), ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := token.GenerateRefreshToken(u.ID, u.Email, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}

	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// resolveCurrentUser loads the acting user from the token identity. The email
// claim is the identity key; an orphaned session maps to a 401.
func (ac *AuthController) resolveCurrentUser(c *gin.Context) (*user.User, bool) {
	email, err := middleware.GetUserEmailFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return nil, false
	}

	u, err := ac.repo.GetUserByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user: " + err.Error()})
		return nil, false
	}
	return u, true
}

// @Summary      Register a new user
// @Description  Create a new account with full name, email, password and role. A role profile (player/coach) is created in the same transaction.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "User registration details"
// @Success      201   {object} AuthResponse "User registered successfully, returns tokens and user info"
// @Failure      400   {object} map[string]interface{} "Validation error or invalid input"
// @Failure      409   {object} map[string]string "User with this email already exists"
// @Failure      500   {object} map[string]string "Internal server error"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	email := strings.ToLower(req.Email)
	if _, err := ac.repo.GetUserByEmail(email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing users: " + err.Error()})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	newUser := &user.User{
		FullName: req.FullName,
		Email:    email,
		Password: hashedPassword,
		Role:     user.Role(req.Role),
		Bio:      req.Bio,
		Location: req.Location,
		Age:      req.Age,
		Gender:   req.Gender,
		IsActive: true,
		IsPublic: false,
	}

	if err := ac.repo.CreateUserWithProfile(newUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User creation failed: " + err.Error()})
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(newUser),
	})
}

// @Summary      Login user
// @Description  Authenticate with email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} AuthResponse "Login successful, returns tokens and user info"
// @Failure      400   {object} map[string]string "Invalid input"
// @Failure      401   {object} map[string]string "Invalid credentials"
// @Failure      500   {object} map[string]string "Internal server error"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	foundUser, err := ac.repo.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same response as a bad password so login cannot be used to probe emails.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	if !utils.CheckPassword(foundUser.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(foundUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(foundUser),
	})
}

// @Summary      Refresh Access Token
// @Description  Refreshes the access token using a valid refresh token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh Token Request"
// @Success      200 {object} map[string]string "Returns a new access token"
// @Failure      400 {object} map[string]string "Invalid input"
// @Failure      401 {object} map[string]string "Invalid or expired refresh token"
// @Failure      500 {object} map[string]string "Token generation failed"
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	rt, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	u, err := ac.repo.GetUserByID(rt.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	newAccessToken, err := token.GenerateAccessToken(u.ID, u.Email, string(u.Role), ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "New access token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": newAccessToken})
}

// @Summary      Logout User
// @Description  Invalidates the user's refresh token (optionally all sessions).
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest false "Logout options"
// @Success      200 {object} map[string]interface{} "Logged out successfully"
// @Failure      400 {object} map[string]string "Invalid input"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      500 {object} map[string]string "Failed to logout"
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	currentUser, ok := ac.resolveCurrentUser(c)
	if !ok {
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if req.RefreshToken != "" {
		if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate refresh token: " + err.Error()})
				return
			}
		}
	}

	if req.InvalidateAllSessions {
		if err := ac.repo.InvalidateAllRefreshTokensForUser(currentUser.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate all sessions: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":                  "Logged out successfully",
		"all_sessions_invalidated": req.InvalidateAllSessions,
	})
}

// @Summary      Get User Profile
// @Description  Retrieves the profile of the currently authenticated user.
// @Tags         Profile
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} UserResponse "User profile data"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	currentUser, ok := ac.resolveCurrentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, FilterUserRecord(currentUser))
}

// @Summary      Update User Profile
// @Description  Updates the profile of the currently authenticated user.
// @Tags         Profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        profileData body UpdateProfileRequest true "Profile data to update"
// @Success      200 {object} UserResponse "Updated user profile data"
// @Failure      400 {object} map[string]string "Invalid input"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /auth/me [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	currentUser, ok := ac.resolveCurrentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if req.FullName != nil {
		currentUser.FullName = *req.FullName
	}
	if req.Bio != nil {
		currentUser.Bio = *req.Bio
	}
	if req.Location != nil {
		currentUser.Location = *req.Location
	}
	if req.Age != nil {
		currentUser.Age = *req.Age
	}
	if req.Gender != nil {
		currentUser.Gender = *req.Gender
	}
	if req.PushToken != nil {
		currentUser.PushToken = *req.PushToken
	}

	if err := ac.repo.UpdateUser(currentUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, FilterUserRecord(currentUser))
}

// @Summary      Update Avatar
// @Description  Uploads a new avatar image for the currently authenticated user.
// @Tags         Profile
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "Avatar image file"
// @Success      200 {object} map[string]string "Avatar updated successfully"
// @Failure      400 {object} map[string]string "Invalid file or input"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      500 {object} map[string]string "Failed to upload or save image path"
// @Router       /auth/me/avatar [put]
func (ac *AuthController) UpdateAvatar(c *gin.Context) {
	currentUser, ok := ac.resolveCurrentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required: " + err.Error()})
		return
	}

	extension := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("user_%d_avatar_%d%s", currentUser.ID, time.Now().UnixNano(), extension)
	uploadPath := filepath.Join(ac.config.App.UploadDir, "avatars", filename)

	if err := utils.EnsureDir(filepath.Dir(uploadPath)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create upload directory: " + err.Error()})
		return
	}

	if err := c.SaveUploadedFile(file, uploadPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded image: " + err.Error()})
		return
	}

	currentUser.Avatar = "/uploads/avatars/" + filename
	if err := ac.repo.UpdateUser(currentUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save avatar path to database: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Avatar updated successfully", "avatar_url": currentUser.Avatar})
}

// @Summary      Change Password
// @Description  Allows an authenticated user to change their password.
// @Tags         Profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        passwords body ChangePasswordRequest true "Old and new password details"
// @Success      200 {object} map[string]string "Password changed successfully"
// @Failure      400 {object} map[string]string "Invalid input or password mismatch"
// @Failure      401 {object} map[string]string "Unauthorized or incorrect old password"
// @Failure      500 {object} map[string]string "Failed to change password"
// @Router       /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	currentUser, ok := ac.resolveCurrentUser(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	if !utils.CheckPassword(currentUser.Password, req.OldPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect old password."})
		return
	}

	if req.OldPassword == req.NewPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password cannot be the same as the old password."})
		return
	}

	newHashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash new password."})
		return
	}

	currentUser.Password = newHashedPassword
	if err := ac.repo.UpdateUser(currentUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}

// @Summary      Toggle Profile Visibility
// @Description  Flips the caller's is_public flag. Read and write happen in one transaction.
// @Tags         Profile
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]bool "New visibility value"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      500 {object} map[string]string "Failed to toggle visibility"
// @Router       /auth/me/toggle-visibility [post]
func (ac *AuthController) ToggleVisibility(c *gin.Context) {
	currentUser, ok := ac.resolveCurrentUser(c)
	if !ok {
		return
	}

	isPublic, err := ac.repo.ToggleVisibility(currentUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle visibility: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_public": isPublic})
}

// @Summary      Deactivate Account
// @Description  Marks the account inactive. Records are retained; this is not a hard delete.
// @Tags         Profile
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]string "Account deactivated"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      500 {object} map[string]string "Failed to deactivate account"
// @Router       /auth/me [delete]
func (ac *AuthController) DeactivateAccount(c *gin.Context) {
	currentUser, ok := ac.resolveCurrentUser(c)
	if !ok {
		return
	}

	currentUser.IsActive = false
	if err := ac.repo.UpdateUser(currentUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account: " + err.Error()})
		return
	}

	if err := ac.repo.InvalidateAllRefreshTokensForUser(currentUser.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate sessions: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated."})
}
