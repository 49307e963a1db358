package social

import (
	"errors"
	"time"

	"github.com/athleo/athleo-backend/internal/models"
	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

var (
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)

type SocialRepository interface {
	CreateFollow(followerID, followingID uint) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	Followers(userID uint, limit int) ([]FollowEntry, error)
	Following(userID uint, limit int) ([]FollowEntry, error)
	FollowerCount(userID uint) (int64, error)
	FollowingCount(userID uint) (int64, error)

	CreatePost(p *Post) error
	PostByID(id uint) (*Post, error)
	DeletePost(p *Post) error
	PostsByUser(userID uint, limit int) ([]Post, error)
	Feed(userID uint, limit int) ([]Post, error)
	ToggleLike(postID, userID uint) (liked bool, err error)
	AddComment(postID uint, comment models.Comment) error

	UserByID(id uint) (*user.User, error)
	UserSummaries(ids []uint) (map[uint]user.Summary, error)
}

type socialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

// CreateFollow inserts the edge with a check inside the transaction. The
// composite unique index backstops the check under concurrency.
func (r *socialRepository) CreateFollow(followerID, followingID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Follow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyFollowing
		}
		return tx.Create(&Follow{FollowerID: followerID, FollowingID: followingID}).Error
	})
}

func (r *socialRepository) DeleteFollow(followerID, followingID uint) error {
	result := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (r *socialRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *socialRepository) Followers(userID uint, limit int) ([]FollowEntry, error) {
	var entries []FollowEntry
	err := r.db.Model(&Follow{}).
		Select("users.id AS user_id, users.full_name, users.avatar, users.role, follows.created_at AS followed_at").
		Joins("JOIN users ON users.id = follows.follower_id AND users.deleted_at IS NULL").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

func (r *socialRepository) Following(userID uint, limit int) ([]FollowEntry, error) {
	var entries []FollowEntry
	err := r.db.Model(&Follow{}).
		Select("users.id AS user_id, users.full_name, users.avatar, users.role, follows.created_at AS followed_at").
		Joins("JOIN users ON users.id = follows.following_id AND users.deleted_at IS NULL").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

func (r *socialRepository) FollowerCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *socialRepository) FollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *socialRepository) CreatePost(p *Post) error {
	if p.Likes == nil {
		p.Likes = models.UintSlice{}
	}
	if p.Comments == nil {
		p.Comments = models.CommentList{}
	}
	return r.db.Create(p).Error
}

func (r *socialRepository) PostByID(id uint) (*Post, error) {
	var p Post
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *socialRepository) DeletePost(p *Post) error {
	return r.db.Delete(p).Error
}

func (r *socialRepository) PostsByUser(userID uint, limit int) ([]Post, error) {
	var posts []Post
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Feed returns the caller's own posts plus public posts of followed authors,
// newest first.
func (r *socialRepository) Feed(userID uint, limit int) ([]Post, error) {
	followed := r.db.Model(&Follow{}).
		Select("following_id").
		Where("follower_id = ?", userID)

	publicAuthors := r.db.Model(&user.User{}).
		Select("id").
		Where("is_public = ?", true)

	var posts []Post
	err := r.db.
		Where("user_id = ? OR (user_id IN (?) AND user_id IN (?))", userID, followed, publicAuthors).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ToggleLike flips the caller's like inside a transaction so concurrent
// toggles do not lose each other's writes.
func (r *socialRepository) ToggleLike(postID, userID uint) (bool, error) {
	var liked bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var p Post
		if err := tx.First(&p, postID).Error; err != nil {
			return err
		}

		if p.Likes.Contains(userID) {
			next := models.UintSlice{}
			for _, id := range p.Likes {
				if id != userID {
					next = append(next, id)
				}
			}
			p.Likes = next
			liked = false
		} else {
			p.Likes = append(p.Likes, userID)
			liked = true
		}
		return tx.Model(&Post{}).Where("id = ?", postID).Update("likes", p.Likes).Error
	})
	return liked, err
}

func (r *socialRepository) AddComment(postID uint, comment models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var p Post
		if err := tx.First(&p, postID).Error; err != nil {
			return err
		}
		if comment.Timestamp.IsZero() {
			comment.Timestamp = time.Now()
		}
		p.Comments = append(p.Comments, comment)
		return tx.Model(&Post{}).Where("id = ?", postID).Update("comments", p.Comments).Error
	})
}

func (r *socialRepository) UserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UserSummaries loads display projections for a set of user ids in one query.
func (r *socialRepository) UserSummaries(ids []uint) (map[uint]user.Summary, error) {
	summaries := make(map[uint]user.Summary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	var users []user.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		summaries[users[i].ID] = user.Summarize(&users[i])
	}
	return summaries, nil
}
