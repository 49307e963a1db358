package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/athleo/athleo-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	AuthUserIDKey = "auth_user_id"
	AuthEmailKey  = "auth_email"
)

// RequireAuth validates the bearer token and stores the caller's identity in
// the context. Requests without a valid token are rejected with 401.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthEmailKey, claims.Email)
		c.Next()
	}
}

// OptionalAuth stores the caller's identity when a valid token is present and
// continues either way. Public read surfaces use it so anonymous browsing
// degrades to empty/false results instead of errors.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := claimsFromHeader(c, jwtSecret); err == nil {
			c.Set(AuthUserIDKey, claims.UserID)
			c.Set(AuthEmailKey, claims.Email)
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, jwtSecret string) (*token.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("Authorization header is required")
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
		return nil, errors.New("Invalid Authorization header format. Expected: Bearer <token>")
	}

	claims, err := token.ValidateToken(bearerToken[1], jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}
	return claims, nil
}

// GetUserEmailFromContext extracts the authenticated email from the context.
func GetUserEmailFromContext(c *gin.Context) (string, error) {
	emailVal, exists := c.Get(AuthEmailKey)
	if !exists {
		return "", errors.New("user email not found in context")
	}
	email, ok := emailVal.(string)
	if !ok || email == "" {
		return "", fmt.Errorf("user email has unexpected type: %T", emailVal)
	}
	return email, nil
}

// GetUserIDFromContext extracts the user ID from the context.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}
	return uid, nil
}
