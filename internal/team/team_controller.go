package team

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

type TeamController struct {
	repo   TeamRepository
	users  user.Repository
	config *config.Config
}

func NewTeamController(repo TeamRepository, users user.Repository, cfg *config.Config) *TeamController {
	return &TeamController{repo: repo, users: users, config: cfg}
}

// @Summary      Create a team
// @Description  Coaches only, one team per coach. The team insert and the coach profile's team_id stamp are one transaction.
// @Tags         Teams
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        team body CreateTeamRequest true "Team details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse "Not a coach"
// @Failure      409 {object} responses.ErrorResponse "Coach already owns a team"
// @Router       /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	caller, ok := common.ResolveUser(c, tc.users)
	if !ok {
		return
	}
	if caller.Role != user.RoleCoach {
		responses.Forbidden(c, "Only coaches can create teams")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	team := &Team{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		CoachID:     caller.ID,
	}
	if err := tc.repo.CreateTeamForCoach(team); err != nil {
		if errors.Is(err, ErrCoachHasTeam) {
			responses.Conflict(c, "You already own a team")
			return
		}
		responses.InternalServerError(c, "Failed to create team: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Team created", team)
}

// @Summary      Get a team
// @Tags         Teams
// @Produce      json
// @Param        id path int true "Team ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /teams/{id} [get]
func (tc *TeamController) GetTeam(c *gin.Context) {
	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	team, err := tc.repo.TeamByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Team")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Team", team)
}

// @Summary      List teams
// @Tags         Teams
// @Produce      json
// @Param        page  query int false "Page (default 1)"
// @Param        limit query int false "Page size (default 10)"
// @Success      200 {object} responses.PaginatedResponse
// @Router       /teams [get]
func (tc *TeamController) ListTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := common.LimitQuery(c, 10, 50)

	teams, total, err := tc.repo.ListTeams(page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to list teams: "+err.Error())
		return
	}
	responses.SendPaginated(c, 200, "Teams", teams, total, page, pageSize)
}

// @Summary      Update a team
// @Tags         Teams
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path int              true "Team ID"
// @Param        team body UpdateTeamRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse "Not the owner"
// @Failure      404 {object} responses.ErrorResponse
// @Router       /teams/{id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	caller, ok := common.ResolveUser(c, tc.users)
	if !ok {
		return
	}

	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	team, err := tc.repo.TeamByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Team")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	if team.CoachID != caller.ID {
		responses.Forbidden(c, "Only the team's coach can update it")
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.Logo != nil {
		team.Logo = *req.Logo
	}

	if err := tc.repo.UpdateTeam(team); err != nil {
		responses.InternalServerError(c, "Failed to update team: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Team updated", team)
}

// @Summary      Invite an athlete
// @Description  Coach-only. Requires the coach to own a team; only one pending invite per coach/athlete pair.
// @Tags         Invites
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        invite body CreateInviteRequest true "Invite details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse "No team, or target is not an athlete"
// @Failure      403 {object} responses.ErrorResponse "Not a coach"
// @Failure      404 {object} responses.ErrorResponse "Athlete not found"
// @Failure      409 {object} responses.ErrorResponse "Pending invite exists"
// @Router       /invites [post]
func (tc *TeamController) CreateInvite(c *gin.Context) {
	caller, ok := common.ResolveUser(c, tc.users)
	if !ok {
		return
	}
	if caller.Role != user.RoleCoach {
		responses.Forbidden(c, "Only coaches can send invites")
		return
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	team, err := tc.repo.TeamByCoachID(caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.BadRequest(c, "Create a team before inviting athletes")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	athlete, err := tc.users.GetByID(req.AthleteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Athlete")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	if athlete.Role != user.RolePlayer {
		responses.BadRequest(c, "Invites can only be sent to athletes")
		return
	}

	invite := &Invite{
		CoachID:   caller.ID,
		AthleteID: athlete.ID,
		TeamID:    team.ID,
		Message:   req.Message,
	}
	if err := tc.repo.CreateInvite(invite); err != nil {
		if errors.Is(err, ErrPendingInvite) {
			responses.Conflict(c, "A pending invite already exists for this athlete")
			return
		}
		responses.InternalServerError(c, "Failed to create invite: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Invite sent", invite)
}

// @Summary      List pending invites
// @Description  Coaches see invites they sent; athletes see invites they received.
// @Tags         Invites
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse
// @Router       /invites/pending [get]
func (tc *TeamController) PendingInvites(c *gin.Context) {
	caller, ok := common.ResolveUser(c, tc.users)
	if !ok {
		return
	}

	var views []InviteView
	var err error
	if caller.Role == user.RoleCoach {
		views, err = tc.repo.PendingInvitesSentBy(caller.ID)
	} else {
		views, err = tc.repo.PendingInvitesReceivedBy(caller.ID)
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to list invites: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Pending invites", views)
}

// @Summary      Respond to an invite
// @Description  Only the invited athlete may respond, and only while the invite is pending. Accepting attaches the athlete to the coach's team atomically with the status change.
// @Tags         Invites
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path int                  true "Invite ID"
// @Param        response body RespondInviteRequest true "Accept or decline"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse "Not the invited athlete"
// @Failure      404 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse "Invite already resolved"
// @Router       /invites/{id}/respond [post]
func (tc *TeamController) RespondToInvite(c *gin.Context) {
	caller, ok := common.ResolveUser(c, tc.users)
	if !ok {
		return
	}

	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req RespondInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	invite, err := tc.repo.InviteByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Invite")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	if invite.AthleteID != caller.ID {
		responses.Forbidden(c, "Only the invited athlete can respond")
		return
	}

	if err := tc.repo.RespondToInvite(invite, req.Accept); err != nil {
		if errors.Is(err, ErrInviteNotPending) {
			responses.Conflict(c, "Invite has already been resolved")
			return
		}
		responses.InternalServerError(c, "Failed to respond to invite: "+err.Error())
		return
	}

	message := "Invite declined"
	if req.Accept {
		message = "Invite accepted"
	}
	responses.SendSuccess(c, 200, message, nil)
}
