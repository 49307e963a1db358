package user

import (
	"time"

	"github.com/athleo/athleo-backend/internal/models"
	"gorm.io/gorm"
)

// Role is the closed set of account roles. It is stored as a string but only
// the three constants below are valid (enforced at binding time).
type Role string

const (
	RolePlayer Role = "PLAYER"
	RoleCoach  Role = "COACH"
	RoleScout  Role = "SCOUT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePlayer || r == RoleCoach || r == RoleScout
}

type User struct {
	gorm.Model
	FullName  string `gorm:"not null" json:"full_name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `json:"-"`
	Role      Role   `gorm:"type:varchar(10);index;not null" json:"role"`
	Avatar    string `json:"avatar"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	PushToken string `json:"-"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
	IsPublic  bool   `gorm:"default:false;index" json:"is_public"`
}

// Player is the role extension for PLAYER accounts, one-to-one with User.
// The aggregate counters (games_played, wins, losses) are maintained only by
// the game-completion transaction; points/assists/rebounds are patched by the
// athlete's coach.
type Player struct {
	gorm.Model
	UserID       uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	User         User    `gorm:"foreignKey:UserID" json:"-"`
	Height       float64 `json:"height"`
	Weight       float64 `json:"weight"`
	Position     string  `gorm:"index" json:"position"`
	DominantHand string  `json:"dominant_hand"` // "left" or "right"
	TeamID       *uint   `gorm:"index" json:"team_id"`
	CoachID      *uint   `gorm:"index" json:"coach_id"`
	GamesPlayed  int     `gorm:"default:0" json:"games_played"`
	Wins         int     `gorm:"default:0" json:"wins"`
	Losses       int     `gorm:"default:0" json:"losses"`
	Points       int     `gorm:"default:0" json:"points"`
	Assists      int     `gorm:"default:0" json:"assists"`
	Rebounds     int     `gorm:"default:0" json:"rebounds"`
}

// Coach is the role extension for COACH accounts, one-to-one with User.
type Coach struct {
	gorm.Model
	UserID         uint               `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User               `gorm:"foreignKey:UserID" json:"-"`
	Certification  string             `json:"certification"`
	Experience     int                `json:"experience"` // years
	Specialization models.StringSlice `gorm:"type:text" json:"specialization"`
	TeamID         *uint              `gorm:"index" json:"team_id"`
}

type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
}

// Summary is the display projection joined into lists (followers, messages,
// blocked users, invites).
type Summary struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

// Summarize builds the display projection of u.
func Summarize(u *User) Summary {
	return Summary{ID: u.ID, FullName: u.FullName, Avatar: u.Avatar}
}
