package social

import (
	"time"

	"github.com/athleo/athleo-backend/internal/models"
	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

// Follow is a directed edge in the social graph. The composite unique index
// makes a duplicate edge unrepresentable even if the application check races.
// Edges are hard-deleted on unfollow; a soft delete would keep the pair in
// the unique index and block a later re-follow.
type Follow struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	FollowerID  uint      `gorm:"uniqueIndex:idx_follow_pair;not null" json:"follower_id"`
	FollowingID uint      `gorm:"uniqueIndex:idx_follow_pair;index;not null" json:"following_id"`
}

// Post is a feed entry. Likes and comments are embedded JSON columns, not
// separate tables; a post's engagement is always read and written as a unit.
type Post struct {
	gorm.Model
	UserID   uint               `gorm:"index;not null" json:"user_id"`
	Content  string             `gorm:"not null" json:"content"`
	ImageURL string             `json:"image_url"`
	Likes    models.UintSlice   `gorm:"type:text" json:"likes"`
	Comments models.CommentList `gorm:"type:text" json:"comments"`
}

type CreatePostRequest struct {
	Content  string `json:"content" binding:"required,max=2000"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

// FollowEntry is a follower/following list row joined with display data.
type FollowEntry struct {
	UserID     uint      `json:"user_id"`
	FullName   string    `json:"full_name"`
	Avatar     string    `json:"avatar"`
	Role       string    `json:"role"`
	FollowedAt time.Time `json:"followed_at"`
}

// PostView is a post joined with its author's display data.
type PostView struct {
	ID           uint               `json:"id"`
	Author       user.Summary       `json:"author"`
	Content      string             `json:"content"`
	ImageURL     string             `json:"image_url"`
	LikeCount    int                `json:"like_count"`
	LikedByMe    bool               `json:"liked_by_me"`
	CommentCount int                `json:"comment_count"`
	Comments     models.CommentList `json:"comments"`
	CreatedAt    time.Time          `json:"created_at"`
}
