package plan_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/plan"
	"github.com/athleo/athleo-backend/internal/testutil"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/internal/workout"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	db := testutil.NewTestDB(t,
		&user.User{}, &user.Player{}, &user.Coach{},
		&workout.Workout{}, &workout.WorkoutLog{},
		&plan.TrainingPlan{}, &plan.PlanWorkout{},
	)
	cfg := testutil.NewTestConfig(t)

	router := gin.New()
	api := router.Group("/api/v1")
	plan.RegisterPlanRoutes(api, db, cfg)
	return router, db, cfg
}

func createPlan(t *testing.T, router *gin.Engine, tok, name string) uint {
	t.Helper()
	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/plans", tok, map[string]interface{}{
		"name":       name,
		"difficulty": "intermediate",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint(testutil.DecodeBody(t, rec)["data"].(map[string]interface{})["ID"].(float64))
}

func createTemplateWorkout(t *testing.T, db *gorm.DB, ownerID uint, name string) uint {
	t.Helper()
	w := &workout.Workout{UserID: ownerID, Name: name, Duration: 30, Status: workout.StatusScheduled}
	require.NoError(t, db.Create(w).Error)
	return w.ID
}

func TestCreatePlanCoachOnly(t *testing.T) {
	router, db, cfg := setup(t)
	player := testutil.CreateUser(t, db, "Plan Player", "planplayer@example.com", user.RolePlayer)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/plans",
		testutil.AccessTokenFor(t, cfg, player), map[string]interface{}{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdatePlanOwnershipAndFields(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Plan Coach", "plancoach@example.com", user.RoleCoach)
	other := testutil.CreateUser(t, db, "Other Plan Coach", "otherplancoach@example.com", user.RoleCoach)
	tok := testutil.AccessTokenFor(t, cfg, coach)

	id := createPlan(t, router, tok, "Base Plan")
	path := fmt.Sprintf("/api/v1/plans/%d", id)

	rec := testutil.DoRequest(t, router, http.MethodPut, path,
		testutil.AccessTokenFor(t, cfg, other), map[string]interface{}{"name": "Hijack"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = testutil.DoRequest(t, router, http.MethodPut, path, tok, map[string]interface{}{
		"name": "Renamed Plan", "is_active": false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored plan.TrainingPlan
	require.NoError(t, db.First(&stored, id).Error)
	assert.Equal(t, "Renamed Plan", stored.Name)
	assert.False(t, stored.IsActive)
}

func TestAddWorkoutIdempotent(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Link Coach", "linkcoach@example.com", user.RoleCoach)
	tok := testutil.AccessTokenFor(t, cfg, coach)

	planID := createPlan(t, router, tok, "Linked Plan")
	workoutID := createTemplateWorkout(t, db, coach.ID, "Template A")
	path := fmt.Sprintf("/api/v1/plans/%d/workouts/%d", planID, workoutID)

	rec := testutil.DoRequest(t, router, http.MethodPost, path, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, testutil.DecodeBody(t, rec)["data"].(map[string]interface{})["added"])

	// Linking again succeeds without a duplicate.
	rec = testutil.DoRequest(t, router, http.MethodPost, path, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, testutil.DecodeBody(t, rec)["data"].(map[string]interface{})["added"])

	var count int64
	require.NoError(t, db.Model(&plan.PlanWorkout{}).Where("plan_id = ?", planID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	rec = testutil.DoRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/plans/%d/workouts/99999", planID), tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssignCreatesScheduledCopies(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Assign Coach", "assigncoach@example.com", user.RoleCoach)
	tok := testutil.AccessTokenFor(t, cfg, coach)

	planID := createPlan(t, router, tok, "Assignable")
	for i := 0; i < 2; i++ {
		workoutID := createTemplateWorkout(t, db, coach.ID, fmt.Sprintf("Template %d", i))
		rec := testutil.DoRequest(t, router, http.MethodPost,
			fmt.Sprintf("/api/v1/plans/%d/workouts/%d", planID, workoutID), tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	a1 := testutil.CreateUser(t, db, "Assignee One", "assignee1@example.com", user.RolePlayer)
	a2 := testutil.CreateUser(t, db, "Assignee Two", "assignee2@example.com", user.RolePlayer)

	scheduled := time.Now().Add(72 * time.Hour)
	rec := testutil.DoRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/plans/%d/assign", planID), tok,
		map[string]interface{}{
			"athlete_ids":    []uint{a1.ID, a2.ID},
			"scheduled_date": scheduled.Format(time.RFC3339),
		})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 4, testutil.DecodeBody(t, rec)["data"].(map[string]interface{})["workouts_created"])

	var copies []workout.Workout
	require.NoError(t, db.Where("user_id = ?", a1.ID).Find(&copies).Error)
	require.Len(t, copies, 2, "each athlete gets a copy of every linked workout")
	for _, cp := range copies {
		assert.Equal(t, workout.StatusScheduled, cp.Status)
		require.NotNil(t, cp.ScheduledDate)
	}

	// The plan itself is untouched by the assignment.
	var linkCount int64
	require.NoError(t, db.Model(&plan.PlanWorkout{}).Where("plan_id = ?", planID).Count(&linkCount).Error)
	assert.EqualValues(t, 2, linkCount)
}

func TestAssignUnknownAthleteWritesNothing(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Strict Coach", "strictcoach@example.com", user.RoleCoach)
	tok := testutil.AccessTokenFor(t, cfg, coach)

	planID := createPlan(t, router, tok, "Strict Plan")
	workoutID := createTemplateWorkout(t, db, coach.ID, "Strict Template")
	rec := testutil.DoRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/plans/%d/workouts/%d", planID, workoutID), tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	real := testutil.CreateUser(t, db, "Real Athlete", "realathlete@example.com", user.RolePlayer)
	rec = testutil.DoRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/plans/%d/assign", planID), tok,
		map[string]interface{}{
			"athlete_ids":    []uint{real.ID, 99999},
			"scheduled_date": time.Now().Format(time.RFC3339),
		})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	require.NoError(t, db.Model(&workout.Workout{}).Where("user_id = ?", real.ID).Count(&count).Error)
	assert.Zero(t, count, "existence checks run before any copy is written")
}

func TestMineRoleViews(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Mine Coach", "minecoach@example.com", user.RoleCoach)
	coachTok := testutil.AccessTokenFor(t, cfg, coach)

	activeID := createPlan(t, router, coachTok, "Active Plan")
	inactiveID := createPlan(t, router, coachTok, "Inactive Plan")
	rec := testutil.DoRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/plans/%d", inactiveID), coachTok,
		map[string]interface{}{"is_active": false})
	require.Equal(t, http.StatusOK, rec.Code)

	// Coach sees both plans.
	rec = testutil.DoRequest(t, router, http.MethodGet, "/api/v1/plans/mine", coachTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeBody(t, rec)["data"].([]interface{}), 2)

	// A coached athlete sees only the active plan.
	athlete := testutil.CreateUser(t, db, "Mine Athlete", "mineathlete@example.com", user.RolePlayer)
	require.NoError(t, db.Model(&user.Player{}).Where("user_id = ?", athlete.ID).Update("coach_id", coach.ID).Error)

	rec = testutil.DoRequest(t, router, http.MethodGet, "/api/v1/plans/mine", testutil.AccessTokenFor(t, cfg, athlete), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := testutil.DecodeBody(t, rec)["data"].([]interface{})
	require.Len(t, list, 1)
	assert.EqualValues(t, activeID, list[0].(map[string]interface{})["ID"])

	// An uncoached athlete gets an empty list.
	free := testutil.CreateUser(t, db, "Free Athlete", "freeathlete@example.com", user.RolePlayer)
	rec = testutil.DoRequest(t, router, http.MethodGet, "/api/v1/plans/mine", testutil.AccessTokenFor(t, cfg, free), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, testutil.DecodeBody(t, rec)["data"])
}

func TestPlanStats(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Stats Coach", "statscoach@example.com", user.RoleCoach)
	tok := testutil.AccessTokenFor(t, cfg, coach)

	planID := createPlan(t, router, tok, "Stats Plan")
	workoutID := createTemplateWorkout(t, db, coach.ID, "Stats Template")
	rec := testutil.DoRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/plans/%d/workouts/%d", planID, workoutID), tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	athlete := testutil.CreateUser(t, db, "Stats Athlete", "statsathlete@example.com", user.RolePlayer)
	require.NoError(t, db.Model(&user.Player{}).Where("user_id = ?", athlete.ID).Update("coach_id", coach.ID).Error)

	rec = testutil.DoRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/plans/%d/stats", planID), tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := testutil.DecodeBody(t, rec)["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["workout_count"])
	assert.EqualValues(t, 1, data["athlete_count"])
	assert.Equal(t, "intermediate", data["difficulty"])
}
