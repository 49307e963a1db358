package social

import (
	"errors"
	"strconv"
	"time"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/common"
	"github.com/athleo/athleo-backend/internal/models"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/pkg/responses"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SocialController struct {
	repo   SocialRepository
	users  user.Repository
	config *config.Config
}

func NewSocialController(repo SocialRepository, users user.Repository, cfg *config.Config) *SocialController {
	return &SocialController{repo: repo, users: users, config: cfg}
}

// @Summary      Follow a user
// @Description  Creates a follow edge. Self-follows are rejected before any write.
// @Tags         Social
// @Security     BearerAuth
// @Produce      json
// @Param        userId path int true "User to follow"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse "Self-follow"
// @Failure      404 {object} responses.ErrorResponse "Target user not found"
// @Failure      409 {object} responses.ErrorResponse "Already following"
// @Router       /social/follow/{userId} [post]
func (sc *SocialController) Follow(c *gin.Context) {
	caller, ok := common.ResolveUser(c, sc.users)
	if !ok {
		return
	}

	targetID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if targetID == caller.ID {
		responses.BadRequest(c, "You cannot follow yourself")
		return
	}

	if _, err := sc.repo.UserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	if err := sc.repo.CreateFollow(caller.ID, targetID); err != nil {
		if errors.Is(err, ErrAlreadyFollowing) {
			responses.Conflict(c, "Already following this user")
			return
		}
		responses.InternalServerError(c, "Failed to follow: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Now following", nil)
}

// @Summary      Unfollow a user
// @Tags         Social
// @Security     BearerAuth
// @Produce      json
// @Param        userId path int true "User to unfollow"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse "Not following"
// @Router       /social/follow/{userId} [delete]
func (sc *SocialController) Unfollow(c *gin.Context) {
	caller, ok := common.ResolveUser(c, sc.users)
	if !ok {
		return
	}

	targetID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	if err := sc.repo.DeleteFollow(caller.ID, targetID); err != nil {
		if errors.Is(err, ErrNotFollowing) {
			responses.NotFound(c, "Follow relationship")
			return
		}
		responses.InternalServerError(c, "Failed to unfollow: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Unfollowed", nil)
}

// @Summary      Check follow status
// @Description  Reports whether the caller follows the given user. Anonymous callers get false, not an error.
// @Tags         Social
// @Produce      json
// @Param        userId path int true "Target user"
// @Success      200 {object} responses.SuccessResponse
// @Router       /social/is-following/{userId} [get]
func (sc *SocialController) IsFollowing(c *gin.Context) {
	targetID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	caller, err := common.MaybeResolveUser(c, sc.users)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	if caller == nil {
		responses.SendSuccess(c, 200, "Follow status", gin.H{"is_following": false})
		return
	}

	following, err := sc.repo.IsFollowing(caller.ID, targetID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Follow status", gin.H{"is_following": following})
}

// @Summary      List followers
// @Tags         Social
// @Produce      json
// @Param        userId path int true "User whose followers to list"
// @Param        limit query int false "Max results (default 50)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /social/followers/{userId} [get]
func (sc *SocialController) Followers(c *gin.Context) {
	userID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	entries, err := sc.repo.Followers(userID, common.LimitQuery(c, 50, 100))
	if err != nil {
		responses.InternalServerError(c, "Failed to list followers: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Followers", entries)
}

// @Summary      List followed users
// @Tags         Social
// @Produce      json
// @Param        userId path int true "User whose following list to show"
// @Param        limit query int false "Max results (default 50)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /social/following/{userId} [get]
func (sc *SocialController) FollowingOf(c *gin.Context) {
	userID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	entries, err := sc.repo.Following(userID, common.LimitQuery(c, 50, 100))
	if err != nil {
		responses.InternalServerError(c, "Failed to list following: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Following", entries)
}

// @Summary      List users the caller follows
// @Tags         Social
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "Max results (default 50)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /social/following [get]
func (sc *SocialController) OwnFollowing(c *gin.Context) {
	caller, ok := common.ResolveUser(c, sc.users)
	if !ok {
		return
	}

	entries, err := sc.repo.Following(caller.ID, common.LimitQuery(c, 50, 100))
	if err != nil {
		responses.InternalServerError(c, "Failed to list following: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Following", entries)
}

// @Summary      Follower count
// @Tags         Social
// @Produce      json
// @Param        userId path int true "User ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /social/followers/{userId}/count [get]
func (sc *SocialController) FollowerCount(c *gin.Context) {
	userID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	count, err := sc.repo.FollowerCount(userID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Follower count", gin.H{"count": count})
}

// @Summary      Following count
// @Tags         Social
// @Produce      json
// @Param        userId path int true "User ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /social/following/{userId}/count [get]
func (sc *SocialController) FollowingCount(c *gin.Context) {
	userID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	count, err := sc.repo.FollowingCount(userID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Following count", gin.H{"count": count})
}

// @Summary      Create a post
// @Tags         Social
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        post body CreatePostRequest true "Post content"
// @Success      201 {object} responses.SuccessResponse
// @Router       /social/posts [post]
func (sc *SocialController) CreatePost(c *gin.Context) {
	caller, ok := common.ResolveUser(c, sc.users)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	post := &Post{UserID: caller.ID, Content: req.Content, ImageURL: req.ImageURL}
	if err := sc.repo.CreatePost(post); err != nil {
		responses.InternalServerError(c, "Failed to create post: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Post created", sc.toView(post, caller.ID, user.Summarize(caller)))
}

// @Summary      List posts
// @Description  Posts of a single author, newest first. Defaults to the caller's own posts.
// @Tags         Social
// @Security     BearerAuth
// @Produce      json
// @Param        user_id query int false "Author (defaults to caller)"
// @Param        limit   query int false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /social/posts [get]
func (sc *SocialController) ListPosts(c *gin.Context) {
	caller, ok := common.ResolveUser(c, sc.users)
	if !ok {
		return
	}

	authorID := caller.ID
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			responses.BadRequest(c, "Invalid user_id parameter")
			return
		}
		authorID = uint(parsed)
	}

	posts, err := sc.repo.PostsByUser(authorID, common.LimitQuery(c, 20, 50))
	if err != nil {
		responses.InternalServerError(c, "Failed to list posts: "+err.Error())
		return
	}
	sc.sendPostViews(c, posts, caller.ID)
}

// @Summary      Personal feed
// @Description  The caller's own posts plus public posts of followed authors, newest first.
// @Tags         Social
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /social/feed [get]
func (sc *SocialController) Feed(c *gin.Context) {
	caller, ok := common.ResolveUser(c, sc.users)
	if !ok {
		return
	}

	posts, err := sc.repo.Feed(caller.ID, common.LimitQuery(c, 20, 50))
	if err != nil {
		responses.InternalServerError(c, "Failed to load feed: "+err.Error())
		return
	}
	sc.sendPostViews(c, posts, caller.ID)
}

// @Summary      Delete a post
// @Tags         Social
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse "Not the author"
// @Failure      404 {object} responses.ErrorResponse
// @Router       /social/posts/{id} [delete]
func (sc *SocialController) DeletePost(c *gin.Context) {
	caller, ok := common.ResolveUser(c, sc.users)
	if !ok {
		return
	}

	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	post, err := sc.repo.PostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	if post.UserID != caller.ID {
		responses.Forbidden(c, "You can only delete your own posts")
		return
	}

	if err := sc.repo.DeletePost(post); err != nil {
		responses.InternalServerError(c, "Failed to delete post: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Post deleted", nil)
}

// @Summary      Toggle a like
// @Tags         Social
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /social/posts/{id}/like [post]
func (sc *SocialController) ToggleLike(c *gin.Context) {
	caller, ok := common.ResolveUser(c, sc.users)
	if !ok {
		return
	}

	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	liked, err := sc.repo.ToggleLike(id, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		responses.InternalServerError(c, "Failed to toggle like: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Like toggled", gin.H{"liked": liked})
}

// @Summary      Comment on a post
// @Tags         Social
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path int            true "Post ID"
// @Param        comment body CommentRequest true "Comment content"
// @Success      201 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /social/posts/{id}/comments [post]
func (sc *SocialController) AddComment(c *gin.Context) {
	caller, ok := common.ResolveUser(c, sc.users)
	if !ok {
		return
	}

	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	comment := models.Comment{UserID: caller.ID, Content: req.Content, Timestamp: time.Now()}
	if err := sc.repo.AddComment(id, comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		responses.InternalServerError(c, "Failed to add comment: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Comment added", comment)
}

func (sc *SocialController) toView(p *Post, viewerID uint, author user.Summary) PostView {
	return PostView{
		ID:           p.ID,
		Author:       author,
		Content:      p.Content,
		ImageURL:     p.ImageURL,
		LikeCount:    len(p.Likes),
		LikedByMe:    p.Likes.Contains(viewerID),
		CommentCount: len(p.Comments),
		Comments:     p.Comments,
		CreatedAt:    p.CreatedAt,
	}
}

func (sc *SocialController) sendPostViews(c *gin.Context, posts []Post, viewerID uint) {
	authorIDs := make([]uint, 0, len(posts))
	seen := map[uint]bool{}
	for i := range posts {
		if !seen[posts[i].UserID] {
			seen[posts[i].UserID] = true
			authorIDs = append(authorIDs, posts[i].UserID)
		}
	}

	summaries, err := sc.repo.UserSummaries(authorIDs)
	if err != nil {
		responses.InternalServerError(c, "Failed to load authors: "+err.Error())
		return
	}

	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, sc.toView(&posts[i], viewerID, summaries[posts[i].UserID]))
	}
	responses.SendSuccess(c, 200, "Posts", views)
}
