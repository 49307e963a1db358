package chat

import (
	"errors"
	"time"

	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

var (
	ErrAlreadyBlocked = errors.New("user is already blocked")
	ErrNotBlocked     = errors.New("user is not blocked")
)

type ChatRepository interface {
	FindOrCreateConversation(userA, userB uint) (*Conversation, error)
	ConversationByID(id uint) (*Conversation, error)
	ConversationsForUser(userID uint, limit int) ([]Conversation, error)

	CreateMessage(conv *Conversation, msg *Message) error
	MessagesForConversation(conversationID uint, limit int) ([]Message, error)
	MarkConversationRead(conversationID, readerID uint) (int64, error)
	UnreadCount(conversationID, userID uint) (int64, error)

	CreateBlock(blockerID, blockedID uint) error
	DeleteBlock(blockerID, blockedID uint) error
	IsBlockedEitherWay(userA, userB uint) (bool, error)
	BlocksByUser(blockerID uint) ([]BlockEntry, error)

	UserByID(id uint) (*user.User, error)
	UserSummaries(ids []uint) (map[uint]user.Summary, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// normalizePair orders the two ids so the smaller one is always user_one.
func normalizePair(userA, userB uint) (uint, uint) {
	if userA < userB {
		return userA, userB
	}
	return userB, userA
}

// FindOrCreateConversation returns the single conversation for the unordered
// pair, creating it on first contact. The unique pair index resolves the race
// when two first messages cross: the loser's insert fails and the existing row
// is fetched instead.
func (r *chatRepository) FindOrCreateConversation(userA, userB uint) (*Conversation, error) {
	one, two := normalizePair(userA, userB)

	var conv Conversation
	err := r.db.Where("user_one_id = ? AND user_two_id = ?", one, two).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = Conversation{UserOneID: one, UserTwoID: two}
	if createErr := r.db.Create(&conv).Error; createErr != nil {
		if fetchErr := r.db.Where("user_one_id = ? AND user_two_id = ?", one, two).First(&conv).Error; fetchErr == nil {
			return &conv, nil
		}
		return nil, createErr
	}
	return &conv, nil
}

func (r *chatRepository) ConversationByID(id uint) (*Conversation, error) {
	var conv Conversation
	if err := r.db.First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *chatRepository) ConversationsForUser(userID uint, limit int) ([]Conversation, error) {
	var convs []Conversation
	err := r.db.Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&convs).Error
	return convs, err
}

// CreateMessage inserts the message and patches the conversation's last-message
// cache in one transaction, so the cache can never disagree with the log.
func (r *chatRepository) CreateMessage(conv *Conversation, msg *Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&Conversation{}).Where("id = ?", conv.ID).Updates(map[string]interface{}{
			"last_message":    msg.Content,
			"last_message_at": now,
		}).Error
	})
}

// MessagesForConversation fetches newest-first; callers reverse for delivery.
func (r *chatRepository) MessagesForConversation(conversationID uint, limit int) ([]Message, error) {
	var msgs []Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

// MarkConversationRead flips unread messages not authored by the reader and
// reports how many were updated. Zero updates is a successful no-op.
func (r *chatRepository) MarkConversationRead(conversationID, readerID uint) (int64, error) {
	result := r.db.Model(&Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *chatRepository) UnreadCount(conversationID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, userID, false).
		Count(&count).Error
	return count, err
}

func (r *chatRepository) CreateBlock(blockerID, blockedID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&BlockedUser{}).
			Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyBlocked
		}
		return tx.Create(&BlockedUser{BlockerID: blockerID, BlockedID: blockedID}).Error
	})
}

func (r *chatRepository) DeleteBlock(blockerID, blockedID uint) error {
	result := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&BlockedUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotBlocked
	}
	return nil
}

// IsBlockedEitherWay reports whether a block exists in either direction
// between the two users. A block in either direction closes the channel.
func (r *chatRepository) IsBlockedEitherWay(userA, userB uint) (bool, error) {
	var count int64
	err := r.db.Model(&BlockedUser{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}

func (r *chatRepository) BlocksByUser(blockerID uint) ([]BlockEntry, error) {
	var entries []BlockEntry
	err := r.db.Model(&BlockedUser{}).
		Select("users.id AS user_id, users.full_name, users.avatar, blocked_users.created_at AS blocked_at").
		Joins("JOIN users ON users.id = blocked_users.blocked_id AND users.deleted_at IS NULL").
		Where("blocked_users.blocker_id = ?", blockerID).
		Order("blocked_users.created_at DESC").
		Scan(&entries).Error
	return entries, err
}

func (r *chatRepository) UserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *chatRepository) UserSummaries(ids []uint) (map[uint]user.Summary, error) {
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
