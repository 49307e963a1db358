package main

import (
	"log"

	"github.com/athleo/athleo-backend/config"
	_ "github.com/athleo/athleo-backend/docs"
	"github.com/athleo/athleo-backend/internal/chat"
	"github.com/athleo/athleo-backend/internal/event"
	"github.com/athleo/athleo-backend/internal/game"
	"github.com/athleo/athleo-backend/internal/plan"
	"github.com/athleo/athleo-backend/internal/scout"
	"github.com/athleo/athleo-backend/internal/social"
	"github.com/athleo/athleo-backend/internal/team"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/internal/workout"
	"github.com/athleo/athleo-backend/pkg/utils"
	"github.com/athleo/athleo-backend/routes"
)

// @title           Athleo API
// @version         1.0
// @description     Team management backend for athletes, coaches and scouts.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	cfg := config.GetConfig()
	db := config.DB

	if err := db.AutoMigrate(
		&user.User{}, &user.Player{}, &user.Coach{}, &user.RefreshToken{},
		&social.Follow{}, &social.Post{},
		&chat.Conversation{}, &chat.Message{}, &chat.BlockedUser{},
		&team.Team{}, &team.Invite{},
		&workout.Workout{}, &workout.WorkoutLog{},
		&game.Game{},
		&event.Event{},
		&plan.TrainingPlan{}, &plan.PlanWorkout{},
		&scout.ScoutReport{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := utils.EnsureDir(cfg.App.UploadDir); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	router := routes.SetupRouter(db, cfg)

	log.Printf("Starting server on port %s (%s)", cfg.App.Port, cfg.App.Env)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
