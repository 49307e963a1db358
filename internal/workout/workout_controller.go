package workout

import (
	"errors"
	"io"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/common"
	"github.com/athleo/athleo-backend/internal/models"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/pkg/responses"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WorkoutController struct {
	repo   WorkoutRepository
	users  user.Repository
	config *config.Config
}

func NewWorkoutController(repo WorkoutRepository, users user.Repository, cfg *config.Config) *WorkoutController {
	return &WorkoutController{repo: repo, users: users, config: cfg}
}

// @Summary      Create a workout
// @Description  A workout with a scheduled date starts as scheduled; without one it starts in progress.
// @Tags         Workouts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        workout body CreateWorkoutRequest true "Workout details"
// @Success      201 {object} responses.SuccessResponse
// @Router       /workouts [post]
func (wc *WorkoutController) Create(c *gin.Context) {
	caller, ok := common.ResolveUser(c, wc.users)
	if !ok {
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	status := StatusInProgress
	if req.ScheduledDate != nil {
		status = StatusScheduled
	}

	w := &Workout{
		UserID:        caller.ID,
		Name:          req.Name,
		Type:          req.Type,
		Duration:      req.Duration,
		Objective:     req.Objective,
		Difficulty:    req.Difficulty,
		ScheduledDate: req.ScheduledDate,
		Status:        status,
	}
	if err := wc.repo.Create(w); err != nil {
		responses.InternalServerError(c, "Failed to create workout: "+err.Error())
		return
	}
	responses.SendSuccess(c, 201, "Workout created", w)
}

// @Summary      List workouts
// @Tags         Workouts
// @Security     BearerAuth
// @Produce      json
// @Param        status query string false "Filter by status"
// @Param        limit  query int    false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /workouts [get]
func (wc *WorkoutController) List(c *gin.Context) {
	caller, ok := common.ResolveUser(c, wc.users)
	if !ok {
		return
	}

	workouts, err := wc.repo.ListByUser(caller.ID, Status(c.Query("status")), common.LimitQuery(c, 20, 100))
	if err != nil {
		responses.InternalServerError(c, "Failed to list workouts: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Workouts", workouts)
}

// resolveOwnedWorkout loads the workout and enforces ownership.
func (wc *WorkoutController) resolveOwnedWorkout(c *gin.Context, callerID uint) (*Workout, bool) {
	id, err := common.UintParam(c, "id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return nil, false
	}

	w, err := wc.repo.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Workout")
			return nil, false
		}
		responses.InternalServerError(c, err.Error())
		return nil, false
	}
	if w.UserID != callerID {
		responses.Forbidden(c, "You can only manage your own workouts")
		return nil, false
	}
	return w, true
}

// @Summary      Start a workout
// @Description  Moves a scheduled workout to in progress.
// @Tags         Workouts
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Workout ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse "Not startable from the current status"
// @Failure      403 {object} responses.ErrorResponse
// @Router       /workouts/{id}/start [post]
func (wc *WorkoutController) Start(c *gin.Context) {
	caller, ok := common.ResolveUser(c, wc.users)
	if !ok {
		return
	}
	w, ok := wc.resolveOwnedWorkout(c, caller.ID)
	if !ok {
		return
	}

	if err := wc.repo.Transition(w, StatusInProgress); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			responses.BadRequest(c, "Workout cannot be started from status "+string(w.Status))
			return
		}
		responses.InternalServerError(c, "Failed to start workout: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Workout started", nil)
}

// @Summary      Complete a workout
// @Description  Marks the workout completed and writes its log in one transaction; on failure neither is visible.
// @Tags         Workouts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id     path int                    true  "Workout ID"
// @Param        result body CompleteWorkoutRequest false "Performed exercises, actual duration, notes"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse "Not completable from the current status"
// @Failure      403 {object} responses.ErrorResponse
// @Router       /workouts/{id}/complete [post]
func (wc *WorkoutController) Complete(c *gin.Context) {
	caller, ok := common.ResolveUser(c, wc.users)
	if !ok {
		return
	}
	w, ok := wc.resolveOwnedWorkout(c, caller.ID)
	if !ok {
		return
	}

	var req CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	duration := req.Duration
	if duration == 0 {
		duration = w.Duration // fall back to the planned duration
	}
	exercises := req.Exercises
	if exercises == nil {
		exercises = models.ExerciseList{}
	}

	log := &WorkoutLog{
		UserID:    caller.ID,
		WorkoutID: w.ID,
		Exercises: exercises,
		Duration:  duration,
		Notes:     req.Notes,
	}
	if err := wc.repo.Complete(w, log); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			responses.BadRequest(c, "Workout cannot be completed from status "+string(w.Status))
			return
		}
		responses.InternalServerError(c, "Failed to complete workout: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Workout completed", log)
}

// @Summary      Skip a workout
// @Description  Moves a scheduled workout to skipped.
// @Tags         Workouts
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Workout ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse "Not skippable from the current status"
// @Failure      403 {object} responses.ErrorResponse
// @Router       /workouts/{id}/skip [post]
func (wc *WorkoutController) Skip(c *gin.Context) {
	caller, ok := common.ResolveUser(c, wc.users)
	if !ok {
		return
	}
	w, ok := wc.resolveOwnedWorkout(c, caller.ID)
	if !ok {
		return
	}

	if w.Status != StatusScheduled {
		responses.BadRequest(c, "Only scheduled workouts can be skipped")
		return
	}

	if err := wc.repo.Transition(w, StatusSkipped); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			responses.BadRequest(c, "Workout cannot be skipped from status "+string(w.Status))
			return
		}
		responses.InternalServerError(c, "Failed to skip workout: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Workout skipped", nil)
}

// @Summary      List workout logs
// @Tags         Workouts
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "Max results (default 20)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /workouts/logs [get]
func (wc *WorkoutController) Logs(c *gin.Context) {
	caller, ok := common.ResolveUser(c, wc.users)
	if !ok {
		return
	}

	logs, err := wc.repo.LogsByUser(caller.ID, common.LimitQuery(c, 20, 100))
	if err != nil {
		responses.InternalServerError(c, "Failed to list logs: "+err.Error())
		return
	}
	responses.SendSuccess(c, 200, "Workout logs", logs)
}
