package directory

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

type DirectoryController struct {
	repo   DirectoryRepository
	users  user.Repository
	config *config.Config
}

func NewDirectoryController(repo DirectoryRepository, users user.Repository, cfg *config.Config) *DirectoryController {
	return &DirectoryController{repo: repo, users: users, config: cfg}
}

// @Summary      Search users
// @Description  Case-insensitive substring search over public profiles. Authenticated callers are excluded from their own results.
// @Tags         Directory
// @Produce      json
// @Param        q     query  string  true   "Search term"
// @Param        limit query  int     false  "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /directory/search [get]
func (dc *DirectoryController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		responses.SendSuccess(c, 200, "Search results", []UserCard{})
		return
	}

	var excludeID uint
	if caller, err := common.MaybeResolveUser(c, dc.users); err != nil {
		responses.InternalServerError(c, err.Error())
		return
	} else if caller != nil {
		excludeID = caller.ID
	}

	cards, err := dc.repo.SearchUsers(query, excludeID, common.LimitQuery(c, 20, 50))
	if err != nil {
		responses.InternalServerError(c, "Search failed: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Search results", cards)
}

// @Summary      List team athletes
// @Description  Athletes of the caller's team. Non-coaches and coaches without a team get an empty list, not an error.
// @Tags         Directory
// @Security     BearerAuth
// @Produce      json
// @Param        team_id query int false "Team to list (defaults to the caller's team)"
// @Success      200 {object} responses.SuccessResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /directory/team-athletes [get]
func (dc *DirectoryController) TeamAthletes(c *gin.Context) {
	caller, ok := common.ResolveUser(c, dc.users)
	if !ok {
		return
	}

	if caller.Role != user.RoleCoach {
		responses.SendSuccess(c, 200, "Team athletes", []AthleteProfile{})
		return
	}

	var teamID uint
	if raw := c.Query("team_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			responses.BadRequest(c, "Invalid team_id parameter")
			return
		}
		teamID = uint(parsed)
	} else {
		coach, err := dc.users.CoachByUserID(caller.ID)
		if err != nil || coach.TeamID == nil {
			responses.SendSuccess(c, 200, "Team athletes", []AthleteProfile{})
			return
		}
		teamID = *coach.TeamID
	}

	athletes, err := dc.repo.AthletesByTeam(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list team athletes: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Team athletes", athletes)
}

// @Summary      Advanced athlete search
// @Description  Filters public athlete profiles by position, location and age range.
// @Tags         Directory
// @Security     BearerAuth
// @Produce      json
// @Param        position query string false "Position (exact, case-insensitive)"
// @Param        location query string false "Location substring"
// @Param        min_age  query int    false "Minimum age"
// @Param        max_age  query int    false "Maximum age"
// @Param        limit    query int    false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /directory/athletes/advanced [get]
func (dc *DirectoryController) AdvancedSearch(c *gin.Context) {
	if _, ok := common.ResolveUser(c, dc.users); !ok {
		return
	}

	filter := AthleteFilter{
		Position: c.Query("position"),
		Location: c.Query("location"),
		Limit:    common.LimitQuery(c, 20, 50),
	}
	filter.MinAge, _ = strconv.Atoi(c.Query("min_age"))
	filter.MaxAge, _ = strconv.Atoi(c.Query("max_age"))
	if filter.MaxAge != 0 && filter.MaxAge < filter.MinAge {
		responses.BadRequest(c, "max_age must not be below min_age")
		return
	}

	athletes, err := dc.repo.SearchAthletes(filter)
	if err != nil {
		responses.InternalServerError(c, "Athlete search failed: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Athlete search results", athletes)
}

// @Summary      Featured athletes
// @Description  Public athletes ranked by stored game counters.
// @Tags         Directory
// @Produce      json
// @Param        limit query int false "Max results (default 10)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /directory/featured [get]
func (dc *DirectoryController) Featured(c *gin.Context) {
	athletes, err := dc.repo.FeaturedAthletes(common.LimitQuery(c, 10, 50))
	if err != nil {
		responses.InternalServerError(c, "Failed to list featured athletes: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Featured athletes", athletes)
}

// @Summary      Get player stats
// @Description  Stored stat counters of a player.
// @Tags         Directory
// @Produce      json
// @Param        userId path int true "Player's user ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /directory/players/{userId}/stats [get]
func (dc *DirectoryController) GetPlayerStats(c *gin.Context) {
	userID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	p, err := dc.repo.PlayerByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Player")
			return
		}
		responses.InternalServerError(c, "Failed to load player stats: "+err.Error())
		return
	}

	responses.SendSuccess(c, 200, "Player stats", PlayerStats{
		UserID:      p.UserID,
		GamesPlayed: p.GamesPlayed,
		Wins:        p.Wins,
		Losses:      p.Losses,
		Points:      p.Points,
		Assists:     p.Assists,
		Rebounds:    p.Rebounds,
	})
}

// @Summary      Update player stats
// @Description  Patches points/assists/rebounds. Only the athlete's own coach may write; games_played, wins and losses are maintained by game completion and cannot be patched here.
// @Tags         Directory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userId path int true "Player's user ID"
// @Param        stats  body UpdatePlayerStatsRequest true "Counters to patch"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /directory/players/{userId}/stats [put]
func (dc *DirectoryController) UpdatePlayerStats(c *gin.Context) {
	caller, ok := common.ResolveUser(c, dc.users)
	if !ok {
		return
	}

	userID, err := common.UintParam(c, "userId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req UpdatePlayerStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	p, err := dc.repo.PlayerByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Player")
			return
		}
		responses.InternalServerError(c, "Failed to load player: "+err.Error())
		return
	}

	if caller.Role != user.RoleCoach || p.CoachID == nil || *p.CoachID != caller.ID {
		responses.Forbidden(c, "Only the athlete's coach can update stats")
		return
	}

	updates := map[string]interface{}{}
	if req.Points != nil {
		updates["points"] = *req.Points
	}
	if req.Assists != nil {
		updates["assists"] = *req.Assists
	}
	if req.Rebounds != nil {
		updates["rebounds"] = *req.Rebounds
	}
	if len(updates) == 0 {
		responses.BadRequest(c, "No stats fields provided")
		return
	}

	if err := dc.repo.UpdatePlayerStats(p, updates); err != nil {
		responses.InternalServerError(c, "Failed to update stats: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Player stats updated", nil)
}

// @Summary      Get user visibility
// @Description  Reports whether a user's profile is public.
// @Tags         Directory
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /directory/users/{id}/visibility [get]
func (dc *DirectoryController) UserVisibility(c *gin.Context) {
	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	u, err := dc.repo.UserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, "Failed to load user: "+err.Error())
		return
	}

	responses.SendSuccess(c, 200, "User visibility", VisibilityResponse{
		UserID:   u.ID,
		IsPublic: u.IsPublic,
	})
}
