package routes

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/auth"
	"github.com/athleo/athleo-backend/internal/chat"
	"github.com/athleo/athleo-backend/internal/dashboard"
	"github.com/athleo/athleo-backend/internal/directory"
	"github.com/athleo/athleo-backend/internal/event"
	"github.com/athleo/athleo-backend/internal/game"
	"github.com/athleo/athleo-backend/internal/plan"
	"github.com/athleo/athleo-backend/internal/scout"
	"github.com/athleo/athleo-backend/internal/social"
	"github.com/athleo/athleo-backend/internal/team"
	"github.com/athleo/athleo-backend/internal/workout"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter builds the engine with all application routes mounted under
// /api/v1.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.Static("/uploads", cfg.App.UploadDir)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		auth.RegisterAuthRoutes(api, db, cfg)
		directory.RegisterDirectoryRoutes(api, db, cfg)
		social.RegisterSocialRoutes(api, db, cfg)
		chat.RegisterChatRoutes(api, db, cfg)
		team.RegisterTeamRoutes(api, db, cfg)
		workout.RegisterWorkoutRoutes(api, db, cfg)
		game.RegisterGameRoutes(api, db, cfg)
		event.RegisterEventRoutes(api, db, cfg)
		plan.RegisterPlanRoutes(api, db, cfg)
		scout.RegisterScoutRoutes(api, db, cfg)
		dashboard.RegisterDashboardRoutes(api, db, cfg)
	}

	return router
}
