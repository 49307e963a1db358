package social

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/middleware"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterSocialRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewSocialRepository(db)
	users := user.NewRepository(db)
	controller := NewSocialController(repo, users, cfg)

	group := router.Group("/social")
	{
		group.GET("/is-following/:userId", middleware.OptionalAuth(cfg.JWT.AccessTokenSecret), controller.IsFollowing)
		group.GET("/followers/:userId", controller.Followers)
		group.GET("/followers/:userId/count", controller.FollowerCount)
		group.GET("/following/:userId", controller.FollowingOf)
		group.GET("/following/:userId/count", controller.FollowingCount)

		protected := group.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWT.AccessTokenSecret))
		{
			protected.POST("/follow/:userId", controller.Follow)
			protected.DELETE("/follow/:userId", controller.Unfollow)
			protected.GET("/following", controller.OwnFollowing)

			protected.POST("/posts", controller.CreatePost)
			protected.GET("/posts", controller.ListPosts)
			protected.DELETE("/posts/:id", controller.DeletePost)
			protected.POST("/posts/:id/like", controller.ToggleLike)
			protected.POST("/posts/:id/comments", controller.AddComment)
			protected.GET("/feed", controller.Feed)
		}
	}
}
