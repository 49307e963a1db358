package chat

import (
	"errors"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/common"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/pkg/responses"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ChatController struct {
	repo   ChatRepository
	users  user.Repository
	config *config.Config
}

func NewChatController(repo ChatRepository, users user.Repository, cfg *config.Config) *ChatController {
	return &ChatController{repo: repo, users: users, config: cfg}
}

// @Summary      Send a message
// @Description  Sends to an existing conversation or starts one with a recipient. A block in either direction closes the channel. The message insert and the conversation's last-message patch are one transaction.
// @Tags         Chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        message body SendMessageRequest true "Message target and content"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse "Bad target"
// @Failure      403 {object} responses.ErrorResponse "Not a participant, or blocked"
// @Failure      404 {object} responses.ErrorResponse
// @Router       /chat/messages [post]
func (cc *ChatController) SendMessage(c *gin.Context) {
	caller, ok := common.ResolveUser(c, cc.users)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	if req.ConversationID == nil && req.RecipientID == nil {
		responses.BadRequest(c, "Either conversation_id or recipient_id is required")
		return
	}

	var conv *Conversation
	var otherID uint

	if req.ConversationID != nil {
		existing, err := cc.repo.ConversationByID(*req.ConversationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.NotFound(c, "Conversation")
				return
			}
			responses.InternalServerError(c, err.Error())
			return
		}
		if !existing.HasParticipant(caller.ID) {
			responses.Forbidden(c, "You are not a participant in this conversation")
			return
		}
		conv = existing
		otherID = existing.OtherParticipant(caller.ID)
	} else {
		if *req.RecipientID == caller.ID {
			responses.BadRequest(c, "You cannot message yourself")
			return
		}
		if _, err := cc.repo.UserByID(*req.RecipientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.NotFound(c, "Recipient")
				return
			}
			responses.InternalServerError(c, err.Error())
			return
		}
		otherID = *req.RecipientID
	}

	blocked, err := cc.repo.IsBlockedEitherWay(caller.ID, otherID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	if blocked {
		responses.Forbidden(c, "Messaging is not available between these users")
		return
	}

	if conv == nil {
		conv, err = cc.repo.FindOrCreateConversation(caller.ID, otherID)
		if err != nil {
			responses.InternalServerError(c, "Failed to open conversation: "+err.Error())
			return
		}
	}

	msg := &Message{ConversationID: conv.ID, SenderID: caller.ID, Content: req.Content}
	if err := cc.repo.CreateMessage(conv, msg); err != nil {
		responses.InternalServerError(c, "Failed to send message: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Message sent", msg)
}

// @Summary      List conversations
// @Description  The caller's conversations, most recently active first, with the counterpart's display data and unread counts.
// @Tags         Chat
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /chat/conversations [get]
func (cc *ChatController) GetConversations(c *gin.Context) {
	caller, ok := common.ResolveUser(c, cc.users)
	if !ok {
		return
	}

	convs, err := cc.repo.ConversationsForUser(caller.ID, common.LimitQuery(c, 20, 50))
	if err != nil {
		responses.InternalServerError(c, "Failed to list conversations: "+err.Error())
		return
	}

	otherIDs := make([]uint, 0, len(convs))
	for i := range convs {
		otherIDs = append(otherIDs, convs[i].OtherParticipant(caller.ID))
	}
	summaries, err := cc.repo.UserSummaries(otherIDs)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	views := make([]ConversationView, 0, len(convs))
	for i := range convs {
		otherID := convs[i].OtherParticipant(caller.ID)
		unread, err := cc.repo.UnreadCount(convs[i].ID, caller.ID)
		if err != nil {
			responses.InternalServerError(c, err.Error())
			return
		}
		views = append(views, ConversationView{
			ID:            convs[i].ID,
			OtherUser:     summaries[otherID],
			LastMessage:   convs[i].LastMessage,
			LastMessageAt: convs[i].LastMessageAt,
			UnreadCount:   unread,
		})
	}
	responses.SendSuccess(c, 200, "Conversations", views)
}

// resolveParticipantConversation loads the conversation and enforces that the
// caller is one of its two members.
func (cc *ChatController) resolveParticipantConversation(c *gin.Context, callerID uint) (*Conversation, bool) {
	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return nil, false
	}

	conv, err := cc.repo.ConversationByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Conversation")
			return nil, false
		}
		responses.InternalServerError(c, err.Error())
		return nil, false
	}
	if !conv.HasParticipant(callerID) {
		responses.Forbidden(c, "You are not a participant in this conversation")
		return nil, false
	}
	return conv, true
}

// @Summary      List messages
// @Description  Messages of a conversation in chronological order. Participants only.
// @Tags         Chat
// @Security     BearerAuth
// @Produce      json
// @Param        id    path  int true  "Conversation ID"
// @Param        limit query int false "Max messages (default 50)"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /chat/conversations/{id}/messages [get]
func (cc *ChatController) GetMessages(c *gin.Context) {
	caller, ok := common.ResolveUser(c, cc.users)
	if !ok {
		return
	}

	conv, ok := cc.resolveParticipantConversation(c, caller.ID)
	if !ok {
		return
	}

	msgs, err := cc.repo.MessagesForConversation(conv.ID, common.LimitQuery(c, 50, 200))
	if err != nil {
		responses.InternalServerError(c, "Failed to load messages: "+err.Error())
		return
	}

	// Fetched newest-first to honor the limit; reverse for delivery.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	responses.SendSuccess(c, 200, "Messages", msgs)
}

// @Summary      Mark conversation read
// @Description  Marks messages not authored by the caller as read. Succeeds with zero updates when nothing is unread.
// @Tags         Chat
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Conversation ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /chat/conversations/{id}/read [post]
func (cc *ChatController) MarkRead(c *gin.Context) {
	caller, ok := common.ResolveUser(c, cc.users)
	if !ok {
		return
	}

	conv, ok := cc.resolveParticipantConversation(c, caller.ID)
	if !ok {
		return
	}

	updated, err := cc.repo.MarkConversationRead(conv.ID, caller.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to mark messages read: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Messages marked read", gin.H{"updated": updated})
}

// @Summary      Unread count
// @Tags         Chat
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Conversation ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /chat/conversations/{id}/unread-count [get]
func (cc *ChatController) GetUnreadCount(c *gin.Context) {
	caller, ok := common.ResolveUser(c, cc.users)
	if !ok {
		return
	}

	conv, ok := cc.resolveParticipantConversation(c, caller.ID)
	if !ok {
		return
	}

	count, err := cc.repo.UnreadCount(conv.ID, caller.ID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Unread count", gin.H{"count": count})
}

// @Summary      Block a user
// @Tags         Chat
// @Security     BearerAuth
// @Produce      json
// @Param        userId path int true "User to block"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse "Self-block"
// @Failure      404 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse "Already blocked"
// @Router       /chat/blocks/{userId} [post]
func (cc *ChatController) BlockUser(c *gin.Context) {
	caller, ok := common.ResolveUser(c, cc.users)
	if !ok {
		return
	}

	targetID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if targetID == caller.ID {
		responses.BadRequest(c, "You cannot block yourself")
		return
	}

	if _, err := cc.repo.UserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	if err := cc.repo.CreateBlock(caller.ID, targetID); err != nil {
		if errors.Is(err, ErrAlreadyBlocked) {
			responses.Conflict(c, "User is already blocked")
			return
		}
		responses.InternalServerError(c, "Failed to block user: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "User blocked", nil)
}

// @Summary      Unblock a user
// @Tags         Chat
// @Security     BearerAuth
// @Produce      json
// @Param        userId path int true "User to unblock"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse "Not blocked"
// @Router       /chat/blocks/{userId} [delete]
func (cc *ChatController) UnblockUser(c *gin.Context) {
	caller, ok := common.ResolveUser(c, cc.users)
	if !ok {
		return
	}

	targetID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	if err := cc.repo.DeleteBlock(caller.ID, targetID); err != nil {
		if errors.Is(err, ErrNotBlocked) {
			responses.NotFound(c, "Block")
			return
		}
		responses.InternalServerError(c, "Failed to unblock user: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "User unblocked", nil)
}

// @Summary      List blocked users
// @Tags         Chat
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse
// @Router       /chat/blocks [get]
func (cc *ChatController) ListBlocks(c *gin.Context) {
	caller, ok := common.ResolveUser(c, cc.users)
	if !ok {
		return
	}

	entries, err := cc.repo.BlocksByUser(caller.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list blocked users: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Blocked users", entries)
}
