package game

import (
	"errors"
	"strconv"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/common"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/pkg/responses"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GameController struct {
	repo   GameRepository
	users  user.Repository
	config *config.Config
}

func NewGameController(repo GameRepository, users user.Repository, cfg *config.Config) *GameController {
	return &GameController{repo: repo, users: users, config: cfg}
}

// @Summary      Create a game
// @Description  Both teams must exist and differ; the same-team check runs before any insert.
// @Tags         Games
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        game body CreateGameRequest true "Game details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse "A team cannot play itself"
// @Failure      404 {object} responses.ErrorResponse "Team not found"
// @Router       /games [post]
func (gc *GameController) Create(c *gin.Context) {
	caller, ok := common.ResolveUser(c, gc.users)
	if !ok {
		return
	}

	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	if req.Team1ID == req.Team2ID {
		responses.BadRequest(c, "A team cannot play against itself")
		return
	}

	for _, teamID := range []uint{req.Team1ID, req.Team2ID} {
		if _, err := gc.repo.TeamByID(teamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.NotFound(c, "Team")
				return
			}
			responses.InternalServerError(c, err.Error())
			return
		}
	}

	g := &Game{
		Name:      req.Name,
		Team1ID:   req.Team1ID,
		Team2ID:   req.Team2ID,
		GameDate:  req.GameDate,
		Location:  req.Location,
		Notes:     req.Notes,
		Status:    StatusScheduled,
		CreatedBy: caller.ID,
	}
	if err := gc.repo.Create(g); err != nil {
		responses.InternalServerError(c, "Failed to create game: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Game created", g)
}

// @Summary      List games
// @Tags         Games
// @Security     BearerAuth
// @Produce      json
// @Param        status  query string false "Filter by status"
// @Param        team_id query int    false "Filter by team"
// @Param        limit   query int    false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /games [get]
func (gc *GameController) List(c *gin.Context) {
	if _, ok := common.ResolveUser(c, gc.users); !ok {
		return
	}

	filter := GameFilter{
		Status: Status(c.Query("status")),
		Limit:  common.LimitQuery(c, 20, 100),
	}
	if raw := c.Query("team_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			responses.BadRequest(c, "Invalid team_id parameter")
			return
		}
		filter.TeamID = uint(parsed)
	}

	views, err := gc.repo.List(filter)
	if err != nil {
		responses.InternalServerError(c, "Failed to list games: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Games", views)
}

// @Summary      List my team's games
// @Description  Games of the caller's team, via the player or coach profile. Callers without a team get an empty list.
// @Tags         Games
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /games/mine [get]
func (gc *GameController) Mine(c *gin.Context) {
	caller, ok := common.ResolveUser(c, gc.users)
	if !ok {
		return
	}

	teamID := gc.callerTeamID(caller)
	if teamID == 0 {
		responses.SendSuccess(c, 200, "Games", []GameView{})
		return
	}

	views, err := gc.repo.List(GameFilter{TeamID: teamID, Limit: common.LimitQuery(c, 20, 100)})
	if err != nil {
		responses.InternalServerError(c, "Failed to list games: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Games", views)
}

func (gc *GameController) callerTeamID(caller *user.User) uint {
	switch caller.Role {
	case user.RolePlayer:
		if p, err := gc.users.PlayerByUserID(caller.ID); err == nil && p.TeamID != nil {
			return *p.TeamID
		}
	case user.RoleCoach:
		if co, err := gc.users.CoachByUserID(caller.ID); err == nil && co.TeamID != nil {
			return *co.TeamID
		}
	}
	return 0
}

// @Summary      Update a game
// @Description  Creator or a coach of either team. Status moves are one-directional and terminal states are locked. Scores are accepted only once the game is, or is becoming, non-scheduled. Completing with both scores folds the outcome into the players' stored counters in the same transaction.
// @Tags         Games
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path int               true "Game ID"
// @Param        game body UpdateGameRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse "Invalid transition or premature scores"
// @Failure      403 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /games/{id} [put]
func (gc *GameController) Update(c *gin.Context) {
	caller, ok := common.ResolveUser(c, gc.users)
	if !ok {
		return
	}

	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	g, err := gc.repo.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Game")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	if !gc.canManage(caller, g) {
		responses.Forbidden(c, "Only the creator or a coach of either team can update this game")
		return
	}
	if g.Status.Terminal() {
		responses.BadRequest(c, "A "+string(g.Status)+" game can no longer be updated")
		return
	}

	var req UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	nextStatus := g.Status
	if req.Status != nil && *req.Status != g.Status {
		if !g.Status.CanTransitionTo(*req.Status) {
			responses.BadRequest(c, "Cannot move a "+string(g.Status)+" game to "+string(*req.Status))
			return
		}
		nextStatus = *req.Status
	}

	if (req.Team1Score != nil || req.Team2Score != nil) && nextStatus == StatusScheduled {
		responses.BadRequest(c, "Scores can only be recorded once the game has started")
		return
	}

	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.GameDate != nil {
		g.GameDate = *req.GameDate
	}
	if req.Location != nil {
		g.Location = *req.Location
	}
	if req.Notes != nil {
		g.Notes = *req.Notes
	}
	if req.Team1Score != nil {
		g.Team1Score = req.Team1Score
	}
	if req.Team2Score != nil {
		g.Team2Score = req.Team2Score
	}
	g.Status = nextStatus

	if nextStatus == StatusCompleted {
		// Completion folds the outcome into player counters atomically.
		if err := gc.repo.CompleteWithStats(g); err != nil {
			responses.InternalServerError(c, "Failed to complete game: "+err.Error())
			return
		}
	} else {
		if err := gc.repo.Update(g); err != nil {
			responses.InternalServerError(c, "Failed to update game: "+err.Error())
			return
		}
	}
	responses.SendSuccess(c, 200, "Game updated", g)
}

// canManage allows the creator and the coaches of either team.
func (gc *GameController) canManage(caller *user.User, g *Game) bool {
	if g.CreatedBy == caller.ID {
		return true
	}
	if caller.Role != user.RoleCoach {
		return false
	}
	co, err := gc.users.CoachByUserID(caller.ID)
	if err != nil || co.TeamID == nil {
		return false
	}
	return *co.TeamID == g.Team1ID || *co.TeamID == g.Team2ID
}
