package event

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterEventRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewEventRepository(db)
	users := user.NewRepository(db)
	controller := NewEventController(repo, users, cfg)

	group := router.Group("/events")
	group.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
	{
		group.POST("", controller.Create)
		group.GET("", controller.List)
		group.PUT("/:id", controller.Update)
		group.DELETE("/:id", controller.Delete)
		group.GET("/team/:teamId", controller.TeamEvents)
	}
}
