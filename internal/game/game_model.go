package game

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// CanTransitionTo encodes the one-directional game lifecycle. completed and
// cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusScheduled:
		return next == StatusInProgress || next == StatusCompleted || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// Terminal reports whether the status accepts no further changes.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Game struct {
	gorm.Model
	Name       string    `gorm:"not null" json:"name"`
	Team1ID    uint      `gorm:"index;not null" json:"team1_id"`
	Team2ID    uint      `gorm:"index;not null" json:"team2_id"`
	GameDate   time.Time `gorm:"index" json:"game_date"`
	Location   string    `json:"location"`
	Status     Status    `gorm:"type:varchar(15);index;not null" json:"status"`
	Team1Score *int      `json:"team1_score"`
	Team2Score *int      `json:"team2_score"`
	Notes      string    `json:"notes"`
	CreatedBy  uint      `gorm:"index;not null" json:"created_by"`
}

type CreateGameRequest struct {
	Name     string    `json:"name" binding:"required,max=100"`
	Team1ID  uint      `json:"team1_id" binding:"required"`
	Team2ID  uint      `json:"team2_id" binding:"required"`
	GameDate time.Time `json:"game_date" binding:"required"`
	Location string    `json:"location" binding:"omitempty,max=200"`
	Notes    string    `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateGameRequest struct {
	Name       *string    `json:"name" binding:"omitempty,max=100"`
	GameDate   *time.Time `json:"game_date"`
	Location   *string    `json:"location" binding:"omitempty,max=200"`
	Status     *Status    `json:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	Team1Score *int       `json:"team1_score" binding:"omitempty,gte=0"`
	Team2Score *int       `json:"team2_score" binding:"omitempty,gte=0"`
	Notes      *string    `json:"notes" binding:"omitempty,max=1000"`
}

// GameView is a game joined with team and creator display data.
type GameView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Team1ID     uint      `json:"team1_id"`
	Team1Name   string    `json:"team1_name"`
	Team2ID     uint      `json:"team2_id"`
	Team2Name   string    `json:"team2_name"`
	GameDate    time.Time `json:"game_date"`
	Location    string    `json:"location"`
	Status      Status    `json:"status"`
	Team1Score  *int      `json:"team1_score"`
	Team2Score  *int      `json:"team2_score"`
	Notes       string    `json:"notes"`
	CreatedBy   uint      `json:"created_by"`
	CreatorName string    `json:"creator_name"`
}

// GameFilter narrows the game list. Zero values mean "no constraint".
type GameFilter struct {
	Status Status
	TeamID uint
	Limit  int
}
