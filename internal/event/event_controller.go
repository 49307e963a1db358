package event

import (
	"errors"
	"time"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/common"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/pkg/responses"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventController struct {
	repo   EventRepository
	users  user.Repository
	config *config.Config
}

func NewEventController(repo EventRepository, users user.Repository, cfg *config.Config) *EventController {
	return &EventController{repo: repo, users: users, config: cfg}
}

// filterFromQuery reads the optional date range and type filters. Dates accept
// RFC 3339 or plain YYYY-MM-DD.
func filterFromQuery(c *gin.Context) (EventFilter, error) {
	filter := EventFilter{Type: c.Query("type")}

	parse := func(raw string) (*time.Time, error) {
		if raw == "" {
			return nil, nil
		}
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return &ts, nil
		}
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
		return &ts, nil
	}

	var err error
	if filter.StartDate, err = parse(c.Query("start_date")); err != nil {
		return filter, errors.New("invalid start_date")
	}
	if filter.EndDate, err = parse(c.Query("end_date")); err != nil {
		return filter, errors.New("invalid end_date")
	}
	return filter, nil
}

// @Summary      Create an event
// @Tags         Events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        event body CreateEventRequest true "Event details"
// @Success      201 {object} responses.SuccessResponse
// @Router       /events [post]
func (ec *EventController) Create(c *gin.Context) {
	caller, ok := common.ResolveUser(c, ec.users)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	if req.EndTime != nil && req.EndTime.Before(req.StartTime) {
		responses.BadRequest(c, "end_time must not precede start_time")
		return
	}

	e := &Event{
		UserID:      caller.ID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
	}
	if err := ec.repo.Create(e); err != nil {
		responses.InternalServerError(c, "Failed to create event: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Event created", e)
}

// @Summary      List events
// @Description  The caller's events sorted by start time, with optional date range and type filters.
// @Tags         Events
// @Security     BearerAuth
// @Produce      json
// @Param        start_date query string false "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param        end_date   query string false "Range end"
// @Param        type       query string false "Event type"
// @Success      200 {object} responses.SuccessResponse
// @Router       /events [get]
func (ec *EventController) List(c *gin.Context) {
	caller, ok := common.ResolveUser(c, ec.users)
	if !ok {
		return
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	events, err := ec.repo.ListByUser(caller.ID, filter)
	if err != nil {
		responses.InternalServerError(c, "Failed to list events: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Events", events)
}

func (ec *EventController) resolveOwnedEvent(c *gin.Context, callerID uint) (*Event, bool) {
	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return nil, false
	}

	e, err := ec.repo.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Event")
			return nil, false
		}
		responses.InternalServerError(c, err.Error())
		return nil, false
	}
	if e.UserID != callerID {
		responses.Forbidden(c, "You can only manage your own events")
		return nil, false
	}
	return e, true
}

// @Summary      Update an event
// @Tags         Events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path int                true "Event ID"
// @Param        event body UpdateEventRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /events/{id} [put]
func (ec *EventController) Update(c *gin.Context) {
	caller, ok := common.ResolveUser(c, ec.users)
	if !ok {
		return
	}
	e, ok := ec.resolveOwnedEvent(c, caller.ID)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Type != nil {
		e.Type = *req.Type
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		e.EndTime = req.EndTime
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		responses.BadRequest(c, "end_time must not precede start_time")
		return
	}

	if err := ec.repo.Update(e); err != nil {
		responses.InternalServerError(c, "Failed to update event: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Event updated", e)
}

// @Summary      Delete an event
// @Tags         Events
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /events/{id} [delete]
func (ec *EventController) Delete(c *gin.Context) {
	caller, ok := common.ResolveUser(c, ec.users)
	if !ok {
		return
	}
	e, ok := ec.resolveOwnedEvent(c, caller.ID)
	if !ok {
		return
	}

	if err := ec.repo.Delete(e); err != nil {
		responses.InternalServerError(c, "Failed to delete event: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Event deleted", nil)
}

// @Summary      List a team's events
// @Description  Union of the team players' events. Only the team's coach may read it.
// @Tags         Events
// @Security     BearerAuth
// @Produce      json
// @Param        teamId     path  int    true  "Team ID"
// @Param        start_date query string false "Range start"
// @Param        end_date   query string false "Range end"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /events/team/{teamId} [get]
func (ec *EventController) TeamEvents(c *gin.Context) {
	caller, ok := common.ResolveUser(c, ec.users)
	if !ok {
		return
	}

	teamID, err := common.UintParam(c, "teamId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	if caller.Role != user.RoleCoach {
		responses.Forbidden(c, "Only the team's coach can view team events")
		return
	}
	co, err := ec.users.CoachByUserID(caller.ID)
	if err != nil || co.TeamID == nil || *co.TeamID != teamID {
		responses.Forbidden(c, "Only the team's coach can view team events")
		return
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	events, err := ec.repo.ListByTeam(teamID, filter)
	if err != nil {
		responses.InternalServerError(c, "Failed to list team events: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Team events", events)
}
