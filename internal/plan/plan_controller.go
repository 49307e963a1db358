package plan

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

type PlanController struct {
	repo   PlanRepository
	users  user.Repository
	config *config.Config
}

func NewPlanController(repo PlanRepository, users user.Repository, cfg *config.Config) *PlanController {
	return &PlanController{repo: repo, users: users, config: cfg}
}

// @Summary      Create a training plan
// @Tags         Plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        plan body CreatePlanRequest true "Plan details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse "Not a coach"
// @Router       /plans [post]
func (pc *PlanController) Create(c *gin.Context) {
	caller, ok := common.ResolveUser(c, pc.users)
	if !ok {
		return
	}
	if caller.Role != user.RoleCoach {
		responses.Forbidden(c, "Only coaches can create training plans")
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	p := &TrainingPlan{
		CoachID:       caller.ID,
		Name:          req.Name,
		Description:   req.Description,
		DurationWeeks: req.DurationWeeks,
		Difficulty:    req.Difficulty,
		Goals:         req.Goals,
		IsActive:      true,
	}
	if err := pc.repo.Create(p); err != nil {
		responses.InternalServerError(c, "Failed to create plan: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Training plan created", p)
}

func (pc *PlanController) resolveOwnedPlan(c *gin.Context, callerID uint) (*TrainingPlan, bool) {
	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return nil, false
	}

	p, err := pc.repo.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Training plan")
			return nil, false
		}
		responses.InternalServerError(c, err.Error())
		return nil, false
	}
	if p.CoachID != callerID {
		responses.Forbidden(c, "Only the owning coach can manage this plan")
		return nil, false
	}
	return p, true
}

// @Summary      Update a training plan
// @Tags         Plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path int               true "Plan ID"
// @Param        plan body UpdatePlanRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /plans/{id} [put]
func (pc *PlanController) Update(c *gin.Context) {
	caller, ok := common.ResolveUser(c, pc.users)
	if !ok {
		return
	}
	p, ok := pc.resolveOwnedPlan(c, caller.ID)
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.DurationWeeks != nil {
		p.DurationWeeks = *req.DurationWeeks
	}
	if req.Difficulty != nil {
		p.Difficulty = *req.Difficulty
	}
	if req.Goals != nil {
		p.Goals = *req.Goals
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := pc.repo.Update(p); err != nil {
		responses.InternalServerError(c, "Failed to update plan: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Training plan updated", p)
}

// @Summary      List training plans
// @Tags         Plans
// @Security     BearerAuth
// @Produce      json
// @Param        coach_id  query int    false "Filter by owning coach"
// @Param        is_active query bool   false "Filter by active flag"
// @Param        limit     query int    false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /plans [get]
func (pc *PlanController) List(c *gin.Context) {
	if _, ok := common.ResolveUser(c, pc.users); !ok {
		return
	}

	var coachID uint
	if raw := c.Query("coach_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			responses.BadRequest(c, "Invalid coach_id parameter")
			return
		}
		coachID = uint(parsed)
	}

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			responses.BadRequest(c, "Invalid is_active parameter")
			return
		}
		isActive = &val
	}

	plans, err := pc.repo.List(coachID, isActive, common.LimitQuery(c, 20, 100))
	if err != nil {
		responses.InternalServerError(c, "Failed to list plans: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Training plans", plans)
}

// @Summary      List my plans
// @Description  Coaches get their own plans. Athletes with a coach get that coach's active plans; athletes without one get an empty list.
// @Tags         Plans
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse
// @Router       /plans/mine [get]
func (pc *PlanController) Mine(c *gin.Context) {
	caller, ok := common.ResolveUser(c, pc.users)
	if !ok {
		return
	}

	limit := common.LimitQuery(c, 20, 100)

	if caller.Role == user.RoleCoach {
		plans, err := pc.repo.List(caller.ID, nil, limit)
		if err != nil {
			responses.InternalServerError(c, "Failed to list plans: "+err.Error())
			return
		}
		responses.SendSuccess(c, 200, "Training plans", plans)
		return
	}

	profile, err := pc.users.PlayerByUserID(caller.ID)
	if err != nil || profile.CoachID == nil {
		responses.SendSuccess(c, 200, "Training plans", []TrainingPlan{})
		return
	}

	active := true
	plans, err := pc.repo.List(*profile.CoachID, &active, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list plans: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Training plans", plans)
}

// @Summary      Add a workout to a plan
// @Description  Idempotent: linking the same workout twice succeeds without a duplicate.
// @Tags         Plans
// @Security     BearerAuth
// @Produce      json
// @Param        id        path int true "Plan ID"
// @Param        workoutId path int true "Workout ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /plans/{id}/workouts/{workoutId} [post]
func (pc *PlanController) AddWorkout(c *gin.Context) {
	caller, ok := common.ResolveUser(c, pc.users)
	if !ok {
		return
	}
	p, ok := pc.resolveOwnedPlan(c, caller.ID)
	if !ok {
		return
	}

	workoutID, err := common.UintParam(c, "workoutId")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if _, err := pc.repo.WorkoutByID(workoutID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Workout")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	added, err := pc.repo.AddWorkout(p.ID, workoutID)
	if err != nil {
		responses.InternalServerError(c, "Failed to add workout: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Workout linked to plan", gin.H{"added": added})
}

// @Summary      Assign a plan to athletes
// @Description  Creates scheduled workout copies of every linked workout for each athlete. The plan itself is not modified.
// @Tags         Plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id         path int               true "Plan ID"
// @Param        assignment body AssignPlanRequest true "Athletes and date"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse "An athlete does not exist"
// @Router       /plans/{id}/assign [post]
func (pc *PlanController) Assign(c *gin.Context) {
	caller, ok := common.ResolveUser(c, pc.users)
	if !ok {
		return
	}
	p, ok := pc.resolveOwnedPlan(c, caller.ID)
	if !ok {
		return
	}

	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	// Every target must be a real athlete before anything is written.
	for _, athleteID := range req.AthleteIDs {
		if _, err := pc.users.PlayerByUserID(athleteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.NotFound(c, "Athlete")
				return
			}
			responses.InternalServerError(c, err.Error())
			return
		}
	}

	created, err := pc.repo.AssignToAthletes(p, req.AthleteIDs, req.ScheduledDate)
	if err != nil {
		responses.InternalServerError(c, "Failed to assign plan: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Plan assigned", gin.H{"workouts_created": created})
}

// @Summary      Plan statistics
// @Tags         Plans
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Plan ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /plans/{id}/stats [get]
func (pc *PlanController) Stats(c *gin.Context) {
	if _, ok := common.ResolveUser(c, pc.users); !ok {
		return
	}

	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	p, err := pc.repo.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Training plan")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	stats, err := pc.repo.Stats(p)
	if err != nil {
		responses.InternalServerError(c, "Failed to compute plan stats: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Plan stats", stats)
}
