package workout

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterWorkoutRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewWorkoutRepository(db)
	users := user.NewRepository(db)
	controller := NewWorkoutController(repo, users, cfg)

	group := router.Group("/workouts")
	group.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
	{
		group.POST("", controller.Create)
		group.GET("", controller.List)
		group.GET("/logs", controller.Logs)
		group.POST("/:id/start", controller.Start)
		group.POST("/:id/complete", controller.Complete)
		group.POST("/:id/skip", controller.Skip)
	}
}
