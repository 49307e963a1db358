package dashboard

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterDashboardRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewDashboardRepository(db)
	users := user.NewRepository(db)
	controller := NewDashboardController(repo, users, cfg)

	group := router.Group("/dashboard")
	group.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
	{
		group.GET("/coach", controller.Coach)
		group.GET("/player", controller.Player)
	}
}
