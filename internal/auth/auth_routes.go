package auth

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewAuthRepository(db)
	controller := NewAuthController(repo, cfg)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", controller.Register)
		authGroup.POST("/login", controller.Login)
		authGroup.POST("/refresh-token", controller.RefreshToken)

		protected := authGroup.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
		{
			protected.POST("/logout", controller.Logout)
			protected.GET("/me", controller.GetProfile)
			protected.PUT("/me", controller.UpdateProfile)
			protected.DELETE("/me", controller.DeactivateAccount)
			protected.PUT("/me/avatar", controller.UpdateAvatar)
			protected.POST("/change-password", controller.ChangePassword)
			protected.POST("/me/toggle-visibility", controller.ToggleVisibility)
		}
	}
}
