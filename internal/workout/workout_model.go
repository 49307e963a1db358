package workout

import (
	"time"

	"github.com/athleo/athleo-backend/internal/models"
	"gorm.io/gorm"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusSkipped    Status = "skipped"
)

// CanTransitionTo encodes the one-directional workout lifecycle:
// scheduled can start, complete or be skipped; in_progress can only complete.
// completed and skipped are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusScheduled:
		return next == StatusInProgress || next == StatusCompleted || next == StatusSkipped
	case StatusInProgress:
		return next == StatusCompleted
	}
	return false
}

type Workout struct {
	gorm.Model
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	Name          string     `gorm:"not null" json:"name"`
	Type          string     `json:"type"`
	Duration      int        `json:"duration"` // planned minutes
	Objective     string     `json:"objective"`
	Difficulty    string     `json:"difficulty"`
	ScheduledDate *time.Time `gorm:"index" json:"scheduled_date"`
	Status        Status     `gorm:"type:varchar(15);index;not null" json:"status"`
}

// WorkoutLog records one completed workout. Created only by the completion
// transaction, never on its own.
type WorkoutLog struct {
	gorm.Model
	UserID      uint                `gorm:"index;not null" json:"user_id"`
	WorkoutID   uint                `gorm:"index;not null" json:"workout_id"`
	Exercises   models.ExerciseList `gorm:"type:text" json:"exercises"`
	Duration    int                 `json:"duration"` // actual minutes
	Notes       string              `json:"notes"`
	CompletedAt time.Time           `gorm:"index;not null" json:"completed_at"`
}

type CreateWorkoutRequest struct {
	Name          string     `json:"name" binding:"required,max=100"`
	Type          string     `json:"type" binding:"omitempty,max=50"`
	Duration      int        `json:"duration" binding:"omitempty,gte=0"`
	Objective     string     `json:"objective" binding:"omitempty,max=500"`
	Difficulty    string     `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

type CompleteWorkoutRequest struct {
	Exercises models.ExerciseList `json:"exercises"`
	Duration  int                 `json:"duration" binding:"omitempty,gte=0"`
	Notes     string              `json:"notes" binding:"omitempty,max=1000"`
}
