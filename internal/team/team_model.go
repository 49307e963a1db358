package team

import (
	"time"

	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

// Team is owned by exactly one coach; the unique index on coach_id enforces
// the one-coach-one-team rule at the storage layer.
type Team struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	CoachID     uint   `gorm:"uniqueIndex;not null" json:"coach_id"`
}

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
)

// Invite is a coach's offer to bring an athlete onto their team. coach_id and
// athlete_id are user ids.
type Invite struct {
	gorm.Model
	CoachID   uint         `gorm:"index;not null" json:"coach_id"`
	AthleteID uint         `gorm:"index;not null" json:"athlete_id"`
	TeamID    uint         `gorm:"index;not null" json:"team_id"`
	Status    InviteStatus `gorm:"type:varchar(10);default:'pending';index" json:"status"`
	Message   string       `json:"message"`
}

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Logo        string `json:"logo" binding:"omitempty,url"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Logo        *string `json:"logo" binding:"omitempty,url"`
}

type CreateInviteRequest struct {
	AthleteID uint   `json:"athlete_id" binding:"required"`
	Message   string `json:"message" binding:"omitempty,max=500"`
}

type RespondInviteRequest struct {
	Accept bool `json:"accept"`
}

// InviteView is an invite joined with the counterpart's display data: the
// athlete for coaches, the coach and team for athletes.
type InviteView struct {
	ID          uint         `json:"id"`
	Status      InviteStatus `json:"status"`
	Message     string       `json:"message"`
	TeamID      uint         `json:"team_id"`
	TeamName    string       `json:"team_name"`
	Counterpart user.Summary `json:"counterpart"`
	CreatedAt   time.Time    `json:"created_at"`
}
