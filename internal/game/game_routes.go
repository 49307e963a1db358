package game

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterGameRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewGameRepository(db)
	users := user.NewRepository(db)
	controller := NewGameController(repo, users, cfg)

	group := router.Group("/games")
	group.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
	{
		group.POST("", controller.Create)
		group.GET("", controller.List)
		group.GET("/mine", controller.Mine)
		group.PUT("/:id", controller.Update)
	}
}
