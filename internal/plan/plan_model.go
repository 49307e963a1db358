package plan

import (
	"time"

	"github.com/athleo/athleo-backend/internal/models"
	"gorm.io/gorm"
)

// TrainingPlan is a coach-owned template grouping workouts. Assignment turns
// the template into concrete scheduled workouts for athletes; the plan itself
// is never mutated by an assignment.
type TrainingPlan struct {
	gorm.Model
	CoachID       uint               `gorm:"index;not null" json:"coach_id"`
	Name          string             `gorm:"not null" json:"name"`
	Description   string             `json:"description"`
	DurationWeeks int                `json:"duration_weeks"`
	Difficulty    string             `gorm:"type:varchar(15)" json:"difficulty"`
	Goals         models.StringSlice `gorm:"type:text" json:"goals"`
	IsActive      bool               `gorm:"default:true;index" json:"is_active"`
}

// PlanWorkout links a workout template into a plan. Hard-deleted on removal
// so the unique pair index stays usable.
type PlanWorkout struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	PlanID    uint      `gorm:"uniqueIndex:idx_plan_workout;not null" json:"plan_id"`
	WorkoutID uint      `gorm:"uniqueIndex:idx_plan_workout;not null" json:"workout_id"`
}

type CreatePlanRequest struct {
	Name          string             `json:"name" binding:"required,max=100"`
	Description   string             `json:"description" binding:"omitempty,max=1000"`
	DurationWeeks int                `json:"duration_weeks" binding:"omitempty,gte=1,lte=52"`
	Difficulty    string             `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Goals         models.StringSlice `json:"goals"`
}

type UpdatePlanRequest struct {
	Name          *string             `json:"name" binding:"omitempty,max=100"`
	Description   *string             `json:"description" binding:"omitempty,max=1000"`
	DurationWeeks *int                `json:"duration_weeks" binding:"omitempty,gte=1,lte=52"`
	Difficulty    *string             `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Goals         *models.StringSlice `json:"goals"`
	IsActive      *bool               `json:"is_active"`
}

type AssignPlanRequest struct {
	AthleteIDs    []uint    `json:"athlete_ids" binding:"required,min=1"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
}

// PlanStats summarizes a plan for the coach's overview.
type PlanStats struct {
	PlanID        uint   `json:"plan_id"`
	WorkoutCount  int64  `json:"workout_count"`
	Difficulty    string `json:"difficulty"`
	DurationWeeks int    `json:"duration_weeks"`
	AthleteCount  int64  `json:"athlete_count"`
}
