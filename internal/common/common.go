package common

import (
	"errors"
	"strconv"

	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/pkg/responses"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResolveUser loads the acting principal for an authenticated request and
// writes the error response itself on failure. A missing identity context is
// Unauthenticated; an identity with no matching record (orphaned session) is
// reported the same way so stale tokens cannot probe the system.
func ResolveUser(c *gin.Context, users user.Repository) (*user.User, bool) {
	email, err := middleware.GetUserEmailFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, false
	}

	u, err := users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.Unauthorized(c, "User not found")
			return nil, false
		}
		responses.InternalServerError(c, "Failed to resolve user: "+err.Error())
		return nil, false
	}
	return u, true
}

// MaybeResolveUser is the optional-auth variant: it returns (nil, nil) for
// anonymous callers instead of writing an error, letting public reads degrade
// to empty/false results.
func MaybeResolveUser(c *gin.Context, users user.Repository) (*user.User, error) {
	email, err := middleware.GetUserEmailFromContext(c)
	if err != nil {
		return nil, nil
	}

	u, err := users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// LimitQuery parses the "limit" query parameter, clamped to [1, max].
func LimitQuery(c *gin.Context, fallback, max int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

// UintParam parses a numeric path parameter.
func UintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return uint(id), nil
}
