package scout

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterScoutRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewScoutRepository(db)
	users := user.NewRepository(db)
	controller := NewScoutController(repo, users, cfg)

	group := router.Group("/scout")
	group.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
	{
		group.POST("/reports", controller.CreateReport)
		group.GET("/reports", controller.ListReports)
		group.GET("/athletes/:id/reports", controller.AthleteReports)
		group.GET("/observed", controller.Observed)
	}
}
