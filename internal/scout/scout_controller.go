package scout

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

type ScoutController struct {
	repo   ScoutRepository
	users  user.Repository
	config *config.Config
}

func NewScoutController(repo ScoutRepository, users user.Repository, cfg *config.Config) *ScoutController {
	return &ScoutController{repo: repo, users: users, config: cfg}
}

func (sc *ScoutController) resolveScout(c *gin.Context) (*user.User, bool) {
	caller, ok := common.ResolveUser(c, sc.users)
	if !ok {
		return nil, false
	}
	if caller.Role != user.RoleScout {
		responses.Forbidden(c, "Only scouts can perform this action")
		return nil, false
	}
	return caller, true
}

// @Summary      File a scout report
// @Description  Reports are append-only; file a new report to revise an evaluation.
// @Tags         Scouting
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        report body CreateReportRequest true "Report details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse "Not a scout"
// @Failure      404 {object} responses.ErrorResponse "Athlete not found"
// @Router       /scout/reports [post]
func (sc *ScoutController) CreateReport(c *gin.Context) {
	caller, ok := sc.resolveScout(c)
	if !ok {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	if _, err := sc.users.PlayerByUserID(req.AthleteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Athlete")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	report := &ScoutReport{
		ScoutID:    caller.ID,
		AthleteID:  req.AthleteID,
		Content:    req.Content,
		Rating:     req.Rating,
		Position:   req.Position,
		Strengths:  req.Strengths,
		Weaknesses: req.Weaknesses,
	}
	if err := sc.repo.CreateReport(report); err != nil {
		responses.InternalServerError(c, "Failed to create report: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Scout report filed", report)
}

// @Summary      List scout reports
// @Description  Scouts see their own reports, optionally narrowed to one athlete. Newest first.
// @Tags         Scouting
// @Security     BearerAuth
// @Produce      json
// @Param        athlete_id query int false "Filter by athlete"
// @Param        limit      query int false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /scout/reports [get]
func (sc *ScoutController) ListReports(c *gin.Context) {
	caller, ok := sc.resolveScout(c)
	if !ok {
		return
	}

	var athleteID uint
	if raw := c.Query("athlete_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			responses.BadRequest(c, "Invalid athlete_id parameter")
			return
		}
		athleteID = uint(parsed)
	}

	reports, err := sc.repo.Reports(athleteID, caller.ID, common.LimitQuery(c, 20, 100))
	if err != nil {
		responses.InternalServerError(c, "Failed to list reports: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Scout reports", reports)
}

// @Summary      Reports on an athlete
// @Description  All filed reports on the athlete with the reporting scout's name, newest first.
// @Tags         Scouting
// @Security     BearerAuth
// @Produce      json
// @Param        id    path  int true  "Athlete user ID"
// @Param        limit query int false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /scout/athletes/{id}/reports [get]
func (sc *ScoutController) AthleteReports(c *gin.Context) {
	if _, ok := common.ResolveUser(c, sc.users); !ok {
		return
	}

	athleteID, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if _, err := sc.users.PlayerByUserID(athleteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Athlete")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	views, err := sc.repo.ReportsForAthlete(athleteID, common.LimitQuery(c, 20, 100))
	if err != nil {
		responses.InternalServerError(c, "Failed to list reports: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Athlete reports", views)
}

// @Summary      Observed athletes
// @Description  Athletes the calling scout has reported on, most recently observed first.
// @Tags         Scouting
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /scout/observed [get]
func (sc *ScoutController) Observed(c *gin.Context) {
	caller, ok := sc.resolveScout(c)
	if !ok {
		return
	}

	observed, err := sc.repo.ObservedAthletes(caller.ID, common.LimitQuery(c, 20, 100))
	if err != nil {
		responses.InternalServerError(c, "Failed to list observed athletes: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Observed athletes", observed)
}
