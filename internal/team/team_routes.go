package team

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterTeamRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewTeamRepository(db)
	users := user.NewRepository(db)
	controller := NewTeamController(repo, users, cfg)

	teams := router.Group("/teams")
	{
		teams.GET("", controller.ListTeams)
		teams.GET("/:id", controller.GetTeam)

		protected := teams.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
		{
			protected.POST("", controller.CreateTeam)
			protected.PUT("/:id", controller.UpdateTeam)
		}
	}

	invites := router.Group("/invites")
	invites.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
	{
		invites.POST("", controller.CreateInvite)
		invites.GET("/pending", controller.PendingInvites)
		invites.POST("/:id/respond", controller.RespondToInvite)
	}
}
