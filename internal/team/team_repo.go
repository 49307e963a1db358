package team

import (
	"errors"
	"time"

	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

var (
	ErrCoachHasTeam     = errors.New("coach already owns a team")
	ErrPendingInvite    = errors.New("a pending invite already exists for this athlete")
	ErrInviteNotPending = errors.New("invite is no longer pending")
)

type TeamRepository interface {
	CreateTeamForCoach(t *Team) error
	TeamByID(id uint) (*Team, error)
	TeamByCoachID(coachUserID uint) (*Team, error)
	ListTeams(page, pageSize int) ([]Team, int64, error)
	UpdateTeam(t *Team) error

	CreateInvite(inv *Invite) error
	InviteByID(id uint) (*Invite, error)
	PendingInvitesSentBy(coachUserID uint) ([]InviteView, error)
	PendingInvitesReceivedBy(athleteUserID uint) ([]InviteView, error)
	RespondToInvite(inv *Invite, accept bool) error
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// CreateTeamForCoach inserts the team and stamps team_id onto the coach
// profile in one transaction.
func (r *teamRepository) CreateTeamForCoach(t *Team) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Team{}).Where("coach_id = ?", t.CoachID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCoachHasTeam
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return tx.Model(&user.Coach{}).
			Where("user_id = ?", t.CoachID).
			Update("team_id", t.ID).Error
	})
}

func (r *teamRepository) TeamByID(id uint) (*Team, error) {
	var t Team
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) TeamByCoachID(coachUserID uint) (*Team, error) {
	var t Team
	if err := r.db.Where("coach_id = ?", coachUserID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) ListTeams(page, pageSize int) ([]Team, int64, error) {
	var total int64
	if err := r.db.Model(&Team{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teams []Team
	err := r.db.Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&teams).Error
	return teams, total, err
}

func (r *teamRepository) UpdateTeam(t *Team) error {
	return r.db.Save(t).Error
}

// CreateInvite inserts the invite after checking pending uniqueness for the
// coach/athlete pair inside the transaction.
func (r *teamRepository) CreateInvite(inv *Invite) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Invite{}).
			Where("coach_id = ? AND athlete_id = ? AND status = ?", inv.CoachID, inv.AthleteID, InvitePending).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrPendingInvite
		}
		inv.Status = InvitePending
		return tx.Create(inv).Error
	})
}

func (r *teamRepository) InviteByID(id uint) (*Invite, error) {
	var inv Invite
	if err := r.db.First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

const inviteViewSelect = `invites.id, invites.status, invites.message, invites.team_id, invites.created_at,
	teams.name AS team_name,
	users.id AS counterpart_id, users.full_name AS counterpart_name, users.avatar AS counterpart_avatar`

type inviteViewRow struct {
	ID                uint
	Status            InviteStatus
	Message           string
	TeamID            uint
	TeamName          string
	CounterpartID     uint
	CounterpartName   string
	CounterpartAvatar string
	CreatedAt         time.Time
}

func (r *teamRepository) PendingInvitesSentBy(coachUserID uint) ([]InviteView, error) {
	return r.pendingInvites("invites.coach_id = ?", "users.id = invites.athlete_id", coachUserID)
}

func (r *teamRepository) PendingInvitesReceivedBy(athleteUserID uint) ([]InviteView, error) {
	return r.pendingInvites("invites.athlete_id = ?", "users.id = invites.coach_id", athleteUserID)
}

func (r *teamRepository) pendingInvites(ownerClause, joinClause string, userID uint) ([]InviteView, error) {
	var rows []inviteViewRow
	err := r.db.Model(&Invite{}).
		Select(inviteViewSelect).
		Joins("JOIN users ON "+joinClause+" AND users.deleted_at IS NULL").
		Joins("JOIN teams ON teams.id = invites.team_id AND teams.deleted_at IS NULL").
		Where(ownerClause, userID).
		Where("invites.status = ?", InvitePending).
		Order("invites.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]InviteView, 0, len(rows))
	for _, row := range rows {
		views = append(views, InviteView{
			ID:       row.ID,
			Status:   row.Status,
			Message:  row.Message,
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
			Counterpart: user.Summary{
				ID:       row.CounterpartID,
				FullName: row.CounterpartName,
				Avatar:   row.CounterpartAvatar,
			},
			CreatedAt: row.CreatedAt,
		})
	}
	return views, nil
}

// RespondToInvite finalizes a pending invite. Acceptance patches the athlete's
// coach_id and team_id together with the status change; either all three land
// or none do.
func (r *teamRepository) RespondToInvite(inv *Invite, accept bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current Invite
		if err := tx.First(&current, inv.ID).Error; err != nil {
			return err
		}
		if current.Status != InvitePending {
			return ErrInviteNotPending
		}

		status := InviteDeclined
		if accept {
			status = InviteAccepted
		}
		if err := tx.Model(&Invite{}).Where("id = ?", inv.ID).Update("status", status).Error; err != nil {
			return err
		}

		if accept {
			return tx.Model(&user.Player{}).
				Where("user_id = ?", current.AthleteID).
				Updates(map[string]interface{}{
					"coach_id": current.CoachID,
					"team_id":  current.TeamID,
				}).Error
		}
		return nil
	})
}
