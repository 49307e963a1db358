package chat

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterChatRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewChatRepository(db)
	users := user.NewRepository(db)
	controller := NewChatController(repo, users, cfg)

	group := router.Group("/chat")
	group.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
	{
		group.POST("/messages", controller.SendMessage)
		group.GET("/conversations", controller.GetConversations)
		group.GET("/conversations/:id/messages", controller.GetMessages)
		group.POST("/conversations/:id/read", controller.MarkRead)
		group.GET("/conversations/:id/unread-count", controller.GetUnreadCount)

		group.POST("/blocks/:userId", controller.BlockUser)
		group.DELETE("/blocks/:userId", controller.UnblockUser)
		group.GET("/blocks", controller.ListBlocks)
	}
}
