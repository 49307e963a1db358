package game

import (
	"github.com/athleo/athleo-backend/internal/team"
	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

type GameRepository interface {
	Create(g *Game) error
	ByID(id uint) (*Game, error)
	List(filter GameFilter) ([]GameView, error)
	Update(g *Game) error
	CompleteWithStats(g *Game) error
	TeamByID(id uint) (*team.Team, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(g *Game) error {
	return r.db.Create(g).Error
}

func (r *gameRepository) ByID(id uint) (*Game, error) {
	var g Game
	if err := r.db.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) List(filter GameFilter) ([]GameView, error) {
	q := r.db.Model(&Game{}).
		Select(`games.id, games.name, games.team1_id, t1.name AS team1_name,
			games.team2_id, t2.name AS team2_name, games.game_date, games.location,
			games.status, games.team1_score, games.team2_score, games.notes,
			games.created_by, users.full_name AS creator_name`).
		Joins("JOIN teams t1 ON t1.id = games.team1_id AND t1.deleted_at IS NULL").
		Joins("JOIN teams t2 ON t2.id = games.team2_id AND t2.deleted_at IS NULL").
		Joins("JOIN users ON users.id = games.created_by AND users.deleted_at IS NULL")

	if filter.Status != "" {
		q = q.Where("games.status = ?", filter.Status)
	}
	if filter.TeamID != 0 {
		q = q.Where("games.team1_id = ? OR games.team2_id = ?", filter.TeamID, filter.TeamID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var views []GameView
	if err := q.Order("games.game_date DESC").Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *gameRepository) Update(g *Game) error {
	return r.db.Save(g).Error
}

// CompleteWithStats persists the completed game and folds the outcome into the
// stored player counters of both teams in one transaction: every player's
// games_played moves, and the winning and losing sides get their win/loss. A
// draw moves games_played only.
func (r *gameRepository) CompleteWithStats(g *Game) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(g).Error; err != nil {
			return err
		}

		bothTeams := []uint{g.Team1ID, g.Team2ID}
		if err := tx.Model(&user.Player{}).
			Where("team_id IN ?", bothTeams).
			Update("games_played", gorm.Expr("games_played + 1")).Error; err != nil {
			return err
		}

		if g.Team1Score == nil || g.Team2Score == nil || *g.Team1Score == *g.Team2Score {
			return nil
		}

		winner, loser := g.Team1ID, g.Team2ID
		if *g.Team2Score > *g.Team1Score {
			winner, loser = g.Team2ID, g.Team1ID
		}
		if err := tx.Model(&user.Player{}).
			Where("team_id = ?", winner).
			Update("wins", gorm.Expr("wins + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&user.Player{}).
			Where("team_id = ?", loser).
			Update("losses", gorm.Expr("losses + 1")).Error
	})
}

func (r *gameRepository) TeamByID(id uint) (*team.Team, error) {
	var t team.Team
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
