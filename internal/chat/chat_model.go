package chat

import (
	"time"

	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

// Conversation is the single thread between two users. The pair is stored
// normalized (user_one_id < user_two_id) and uniquely indexed, so an unordered
// pair can never map to more than one conversation. last_message and
// last_message_at are caches updated in the same transaction as the message
// insert.
type Conversation struct {
	gorm.Model
	UserOneID     uint       `gorm:"uniqueIndex:idx_conversation_pair;not null" json:"user_one_id"`
	UserTwoID     uint       `gorm:"uniqueIndex:idx_conversation_pair;not null" json:"user_two_id"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`
}

// OtherParticipant returns the counterpart of userID in the pair.
func (conv *Conversation) OtherParticipant(userID uint) uint {
	if conv.UserOneID == userID {
		return conv.UserTwoID
	}
	return conv.UserOneID
}

// HasParticipant reports whether userID is one of the two members.
func (conv *Conversation) HasParticipant(userID uint) bool {
	return conv.UserOneID == userID || conv.UserTwoID == userID
}

// Message rows start unread; is_read means "seen by the recipient" and only
// the mark-read endpoint flips it.
type Message struct {
	gorm.Model
	ConversationID uint   `gorm:"index;not null" json:"conversation_id"`
	SenderID       uint   `gorm:"index;not null" json:"sender_id"`
	Content        string `gorm:"not null" json:"content"`
	IsRead         bool   `gorm:"default:false" json:"is_read"`
}

// BlockedUser is a directed block edge. Hard-deleted on unblock so the unique
// pair index does not trap soft-deleted rows.
type BlockedUser struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	BlockerID uint      `gorm:"uniqueIndex:idx_block_pair;not null" json:"blocker_id"`
	BlockedID uint      `gorm:"uniqueIndex:idx_block_pair;not null" json:"blocked_id"`
}

// SendMessageRequest targets either an existing conversation or a recipient;
// exactly one of the two must be set.
type SendMessageRequest struct {
	ConversationID *uint  `json:"conversation_id"`
	RecipientID    *uint  `json:"recipient_id"`
	Content        string `json:"content" binding:"required,max=4000"`
}

// ConversationView is a conversation row with the counterpart's display data.
type ConversationView struct {
	ID            uint         `json:"id"`
	OtherUser     user.Summary `json:"other_user"`
	LastMessage   string       `json:"last_message"`
	LastMessageAt *time.Time   `json:"last_message_at"`
	UnreadCount   int64        `json:"unread_count"`
}

// BlockEntry is a block edge joined with the blocked user's display data.
type BlockEntry struct {
	UserID    uint      `json:"user_id"`
	FullName  string    `json:"full_name"`
	Avatar    string    `json:"avatar"`
	BlockedAt time.Time `json:"blocked_at"`
}
