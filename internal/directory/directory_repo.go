package directory

import (
	"strings"

	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

type DirectoryRepository interface {
	SearchUsers(query string, excludeUserID uint, limit int) ([]UserCard, error)
	AthletesByTeam(teamID uint) ([]AthleteProfile, error)
	SearchAthletes(filter AthleteFilter) ([]AthleteProfile, error)
	FeaturedAthletes(limit int) ([]AthleteProfile, error)
	PlayerByUserID(userID uint) (*user.Player, error)
	UpdatePlayerStats(p *user.Player, updates map[string]interface{}) error
	UserByID(id uint) (*user.User, error)
}

type directoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

const athleteSelect = `players.user_id, users.full_name, users.avatar, users.location, users.age,
	players.position, players.height, players.weight, players.team_id, players.games_played, players.points`

// SearchUsers matches public profiles by a case-insensitive substring over
// full_name, bio and location. LOWER + LIKE is used instead of ILIKE so the
// query runs on both Postgres and SQLite.
func (r *directoryRepository) SearchUsers(query string, excludeUserID uint, limit int) ([]UserCard, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	q := r.db.Model(&user.User{}).
		Select("users.id, users.full_name, users.role, users.avatar, users.bio, users.location").
		Where("users.is_public = ? AND users.is_active = ?", true, true).
		Where("(LOWER(users.full_name) LIKE ? OR LOWER(users.bio) LIKE ? OR LOWER(users.location) LIKE ?)",
			pattern, pattern, pattern).
		Order("users.full_name ASC").
		Limit(limit)

	if excludeUserID != 0 {
		q = q.Where("users.id <> ?", excludeUserID)
	}

	cards := []UserCard{}
	if err := q.Scan(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *directoryRepository) AthletesByTeam(teamID uint) ([]AthleteProfile, error) {
	athletes := []AthleteProfile{}
	err := r.db.Model(&user.Player{}).
		Select(athleteSelect).
		Joins("JOIN users ON users.id = players.user_id AND users.deleted_at IS NULL").
		Where("players.team_id = ?", teamID).
		Order("users.full_name ASC").
		Scan(&athletes).Error
	if err != nil {
		return nil, err
	}
	return athletes, nil
}

func (r *directoryRepository) SearchAthletes(filter AthleteFilter) ([]AthleteProfile, error) {
	q := r.db.Model(&user.Player{}).
		Select(athleteSelect).
		Joins("JOIN users ON users.id = players.user_id AND users.deleted_at IS NULL").
		Where("users.is_public = ? AND users.is_active = ?", true, true)

	if filter.Position != "" {
		q = q.Where("LOWER(players.position) = ?", strings.ToLower(filter.Position))
	}
	if filter.Location != "" {
		q = q.Where("LOWER(users.location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.MinAge > 0 {
		q = q.Where("users.age >= ?", filter.MinAge)
	}
	if filter.MaxAge > 0 {
		q = q.Where("users.age <= ?", filter.MaxAge)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	athletes := []AthleteProfile{}
	if err := q.Order("users.full_name ASC").Scan(&athletes).Error; err != nil {
		return nil, err
	}
	return athletes, nil
}

// FeaturedAthletes ranks public athletes by their stored game counters.
func (r *directoryRepository) FeaturedAthletes(limit int) ([]AthleteProfile, error) {
	athletes := []AthleteProfile{}
	err := r.db.Model(&user.Player{}).
		Select(athleteSelect).
		Joins("JOIN users ON users.id = players.user_id AND users.deleted_at IS NULL").
		Where("users.is_public = ? AND users.is_active = ?", true, true).
		Order("players.games_played DESC, players.points DESC").
		Limit(limit).
		Scan(&athletes).Error
	if err != nil {
		return nil, err
	}
	return athletes, nil
}

func (r *directoryRepository) PlayerByUserID(userID uint) (*user.Player, error) {
	var p user.Player
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *directoryRepository) UpdatePlayerStats(p *user.Player, updates map[string]interface{}) error {
	return r.db.Model(p).Updates(updates).Error
}

func (r *directoryRepository) UserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
