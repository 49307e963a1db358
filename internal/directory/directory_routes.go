package directory

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterDirectoryRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewDirectoryRepository(db)
	users := user.NewRepository(db)
	controller := NewDirectoryController(repo, users, cfg)

	group := router.Group("/directory")
	{
		group.GET("/search", middleware.OptionalAuth(cfg.JWT.AccessTokenSecret), controller.Search)
		group.GET("/featured", controller.Featured)
		group.GET("/players/:userId/stats", controller.GetPlayerStats)
		group.GET("/users/:id/visibility", controller.UserVisibility)

		protected := group.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
		{
			protected.GET("/team-athletes", controller.TeamAthletes)
			protected.GET("/athletes/advanced", controller.AdvancedSearch)
			protected.PUT("/players/:userId/stats", controller.UpdatePlayerStats)
		}
	}
}
