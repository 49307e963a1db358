package workout_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/athleo/athleo-backend/config"
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
	)
	cfg := testutil.NewTestConfig(t)

	router := gin.New()
	api := router.Group("/api/v1")
	workout.RegisterWorkoutRoutes(api, db, cfg)
	return router, db, cfg
}

func createWorkout(t *testing.T, router *gin.Engine, tok string, body map[string]interface{}) uint {
	t.Helper()
	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/workouts", tok, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint(testutil.DecodeBody(t, rec)["data"].(map[string]interface{})["ID"].(float64))
}

func TestCreateWorkoutStatusDependsOnSchedule(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Lifter", "lifter@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, u)

	scheduledID := createWorkout(t, router, tok, map[string]interface{}{
		"name":           "Morning run",
		"scheduled_date": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	immediateID := createWorkout(t, router, tok, map[string]interface{}{"name": "Spontaneous lift"})

	var scheduled, immediate workout.Workout
	require.NoError(t, db.First(&scheduled, scheduledID).Error)
	require.NoError(t, db.First(&immediate, immediateID).Error)
	assert.Equal(t, workout.StatusScheduled, scheduled.Status)
	assert.Equal(t, workout.StatusInProgress, immediate.Status, "no schedule means it starts now")
}

func TestListWorkoutsOwnerScoped(t *testing.T) {
	router, db, cfg := setup(t)
	mine := testutil.CreateUser(t, db, "Mine", "mine@example.com", user.RolePlayer)
	theirs := testutil.CreateUser(t, db, "Theirs", "theirs@example.com", user.RolePlayer)

	createWorkout(t, router, testutil.AccessTokenFor(t, cfg, mine), map[string]interface{}{"name": "My workout"})
	createWorkout(t, router, testutil.AccessTokenFor(t, cfg, theirs), map[string]interface{}{"name": "Their workout"})

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/workouts", testutil.AccessTokenFor(t, cfg, mine), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := testutil.DecodeBody(t, rec)["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "My workout", list[0].(map[string]interface{})["name"])
}

func TestStartOnlyFromScheduled(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Starter", "starter@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, u)

	id := createWorkout(t, router, tok, map[string]interface{}{
		"name":           "Planned session",
		"scheduled_date": time.Now().Format(time.RFC3339),
	})
	path := fmt.Sprintf("/api/v1/workouts/%d/start", id)

	rec := testutil.DoRequest(t, router, http.MethodPost, path, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Starting an in-progress workout violates the one-directional lifecycle.
	rec = testutil.DoRequest(t, router, http.MethodPost, path, tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteWritesExactlyOneLogAndStatus(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Finisher", "finisher@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, u)

	id := createWorkout(t, router, tok, map[string]interface{}{"name": "Session", "duration": 45})
	path := fmt.Sprintf("/api/v1/workouts/%d/complete", id)

	rec := testutil.DoRequest(t, router, http.MethodPost, path, tok, map[string]interface{}{
		"exercises": []map[string]interface{}{{"name": "Squat", "sets": 3, "reps": 8}},
		"notes":     "felt strong",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var w workout.Workout
	require.NoError(t, db.First(&w, id).Error)
	assert.Equal(t, workout.StatusCompleted, w.Status)

	var logs []workout.WorkoutLog
	require.NoError(t, db.Where("workout_id = ?", id).Find(&logs).Error)
	require.Len(t, logs, 1, "completion writes exactly one log")
	assert.Equal(t, 45, logs[0].Duration, "actual duration falls back to the planned one")
	assert.False(t, logs[0].CompletedAt.IsZero())
	require.Len(t, logs[0].Exercises, 1)
	assert.Equal(t, "Squat", logs[0].Exercises[0].Name)

	// Completing again must not produce a second log.
	rec = testutil.DoRequest(t, router, http.MethodPost, path, tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, db.Where("workout_id = ?", id).Find(&logs).Error)
	assert.Len(t, logs, 1)
}

func TestSkipOnlyFromScheduled(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Skipper", "skipper@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, u)

	scheduledID := createWorkout(t, router, tok, map[string]interface{}{
		"name":           "Skippable",
		"scheduled_date": time.Now().Format(time.RFC3339),
	})
	inProgressID := createWorkout(t, router, tok, map[string]interface{}{"name": "Unskippable"})

	rec := testutil.DoRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/workouts/%d/skip", scheduledID), tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.DoRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/workouts/%d/skip", inProgressID), tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkoutOwnershipEnforced(t *testing.T) {
	router, db, cfg := setup(t)
	owner := testutil.CreateUser(t, db, "W Owner", "wowner@example.com", user.RolePlayer)
	intruder := testutil.CreateUser(t, db, "W Intruder", "wintruder@example.com", user.RolePlayer)

	id := createWorkout(t, router, testutil.AccessTokenFor(t, cfg, owner), map[string]interface{}{"name": "Private"})

	rec := testutil.DoRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/workouts/%d/complete", id),
		testutil.AccessTokenFor(t, cfg, intruder), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogsNewestFirst(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Logger", "logger@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, u)

	for i := 0; i < 2; i++ {
		id := createWorkout(t, router, tok, map[string]interface{}{"name": fmt.Sprintf("Workout %d", i)})
		rec := testutil.DoRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/workouts/%d/complete", id), tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/workouts/logs", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeBody(t, rec)["data"].([]interface{}), 2)
}
