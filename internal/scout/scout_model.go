package scout

import (
	"github.com/athleo/athleo-backend/internal/models"
	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

// ScoutReport is an append-only evaluation of an athlete. Reports are never
// edited or deleted; a scout files a new one to revise an opinion.
type ScoutReport struct {
	gorm.Model
	ScoutID    uint               `gorm:"index;not null" json:"scout_id"`
	AthleteID  uint               `gorm:"index;not null" json:"athlete_id"`
	Content    string             `gorm:"type:text;not null" json:"content"`
	Rating     int                `gorm:"not null" json:"rating"`
	Position   string             `gorm:"type:varchar(30)" json:"position"`
	Strengths  models.StringSlice `gorm:"type:text" json:"strengths"`
	Weaknesses models.StringSlice `gorm:"type:text" json:"weaknesses"`
}

type CreateReportRequest struct {
	AthleteID  uint               `json:"athlete_id" binding:"required"`
	Content    string             `json:"content" binding:"required,max=5000"`
	Rating     int                `json:"rating" binding:"required,gte=1,lte=10"`
	Position   string             `json:"position" binding:"omitempty,max=30"`
	Strengths  models.StringSlice `json:"strengths"`
	Weaknesses models.StringSlice `json:"weaknesses"`
}

// ReportView joins the scout's display name onto a report for athlete-facing
// listings.
type ReportView struct {
	ScoutReport
	ScoutName string `json:"scout_name"`
}

// ObservedAthlete is one athlete a scout has filed reports on, with the
// latest rating given.
type ObservedAthlete struct {
	Athlete      user.Summary `json:"athlete"`
	ReportCount  int64        `json:"report_count"`
	LatestRating int          `json:"latest_rating"`
}
