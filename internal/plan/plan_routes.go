package plan

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterPlanRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewPlanRepository(db)
	users := user.NewRepository(db)
	controller := NewPlanController(repo, users, cfg)

	group := router.Group("/plans")
	group.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
	{
		group.POST("", controller.Create)
		group.GET("", controller.List)
		group.GET("/mine", controller.Mine)
		group.PUT("/:id", controller.Update)
		group.POST("/:id/workouts/:workoutId", controller.AddWorkout)
		group.POST("/:id/assign", controller.Assign)
		group.GET("/:id/stats", controller.Stats)
	}
}
