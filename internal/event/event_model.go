package event

import (
	"time"

	"gorm.io/gorm"
)

// Event is a plain owned calendar record; unlike workouts and games it has no
// state machine.
type Event struct {
	gorm.Model
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Type        string     `gorm:"index" json:"type"`
	StartTime   time.Time  `gorm:"index;not null" json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    string     `json:"location"`
}

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required,max=100"`
	Description string     `json:"description" binding:"omitempty,max=1000"`
	Type        string     `json:"type" binding:"omitempty,max=50"`
	StartTime   time.Time  `json:"start_time" binding:"required"`
	EndTime     *time.Time `json:"end_time"`
	Location    string     `json:"location" binding:"omitempty,max=200"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Type        *string    `json:"type" binding:"omitempty,max=50"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    *string    `json:"location" binding:"omitempty,max=200"`
}

// EventFilter narrows event listings. Zero values mean "no constraint".
type EventFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
}
