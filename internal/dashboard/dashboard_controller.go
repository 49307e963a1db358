package dashboard

import (
	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/common"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/pkg/responses"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	repo   DashboardRepository
	users  user.Repository
	config *config.Config
}

func NewDashboardController(repo DashboardRepository, users user.Repository, cfg *config.Config) *DashboardController {
	return &DashboardController{repo: repo, users: users, config: cfg}
}

// @Summary      Coach dashboard
// @Description  Roster overview computed at read time: athlete counts, training activity and upcoming fixtures.
// @Tags         Dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse "Not a coach"
// @Router       /dashboard/coach [get]
func (dc *DashboardController) Coach(c *gin.Context) {
	caller, ok := common.ResolveUser(c, dc.users)
	if !ok {
		return
	}
	if caller.Role != user.RoleCoach {
		responses.Forbidden(c, "Only coaches can view the coach dashboard")
		return
	}

	var teamID *uint
	if profile, err := dc.users.CoachByUserID(caller.ID); err == nil {
		teamID = profile.TeamID
	}

	board, err := dc.repo.CoachDashboard(
		caller.ID,
		teamID,
		dc.config.Dashboard.LowActivityMinLogs,
		dc.config.Dashboard.LowActivityWindowDays,
	)
	if err != nil {
		responses.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Coach dashboard", board)
}

// @Summary      Player dashboard
// @Description  The athlete's own workout counts, weekly log total and current training streak.
// @Tags         Dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse
// @Router       /dashboard/player [get]
func (dc *DashboardController) Player(c *gin.Context) {
	caller, ok := common.ResolveUser(c, dc.users)
	if !ok {
		return
	}

	board, err := dc.repo.PlayerDashboard(caller.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Player dashboard", board)
}
