package scout_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/scout"
	"github.com/athleo/athleo-backend/internal/testutil"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	db := testutil.NewTestDB(t,
		&user.User{}, &user.Player{}, &user.Coach{},
		&scout.ScoutReport{},
	)
	cfg := testutil.NewTestConfig(t)

	router := gin.New()
	api := router.Group("/api/v1")
	scout.RegisterScoutRoutes(api, db, cfg)
	return router, db, cfg
}

func fileReport(t *testing.T, router *gin.Engine, tok string, athleteID uint, rating int, content string) {
	t.Helper()
	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/scout/reports", tok, map[string]interface{}{
		"athlete_id": athleteID,
		"content":    content,
		"rating":     rating,
		"strengths":  []string{"speed"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateReportScoutOnly(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Report Coach", "reportcoach@example.com", user.RoleCoach)
	athlete := testutil.CreateUser(t, db, "Watched Athlete", "watched@example.com", user.RolePlayer)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/scout/reports",
		testutil.AccessTokenFor(t, cfg, coach), map[string]interface{}{
			"athlete_id": athlete.ID, "content": "Looks good", "rating": 7,
		})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	require.NoError(t, db.Model(&scout.ScoutReport{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateReportUnknownAthlete(t *testing.T) {
	router, db, cfg := setup(t)
	s := testutil.CreateUser(t, db, "Lone Scout", "lonescout@example.com", user.RoleScout)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/scout/reports",
		testutil.AccessTokenFor(t, cfg, s), map[string]interface{}{
			"athlete_id": 99999, "content": "Ghost", "rating": 5,
		})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReportRejectsNonAthleteTarget(t *testing.T) {
	router, db, cfg := setup(t)
	s := testutil.CreateUser(t, db, "Picky Scout", "pickyscout@example.com", user.RoleScout)
	coach := testutil.CreateUser(t, db, "Target Coach", "targetcoach@example.com", user.RoleCoach)

	// Coaches have no player profile, so they cannot be reported on.
	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/scout/reports",
		testutil.AccessTokenFor(t, cfg, s), map[string]interface{}{
			"athlete_id": coach.ID, "content": "Wrong target", "rating": 5,
		})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListReportsOwnAndFiltered(t *testing.T) {
	router, db, cfg := setup(t)
	s1 := testutil.CreateUser(t, db, "Scout One", "scout1@example.com", user.RoleScout)
	s2 := testutil.CreateUser(t, db, "Scout Two", "scout2@example.com", user.RoleScout)
	a1 := testutil.CreateUser(t, db, "Athlete One", "athlete1@example.com", user.RolePlayer)
	a2 := testutil.CreateUser(t, db, "Athlete Two", "athlete2@example.com", user.RolePlayer)

	tok1 := testutil.AccessTokenFor(t, cfg, s1)
	fileReport(t, router, tok1, a1.ID, 6, "First look")
	fileReport(t, router, tok1, a2.ID, 8, "Strong prospect")
	fileReport(t, router, testutil.AccessTokenFor(t, cfg, s2), a1.ID, 4, "Not convinced")

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/scout/reports", tok1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeBody(t, rec)["data"].([]interface{}), 2, "only the caller's reports")

	rec = testutil.DoRequest(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/scout/reports?athlete_id=%d", a1.ID), tok1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := testutil.DecodeBody(t, rec)["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "First look", list[0].(map[string]interface{})["content"])
}

func TestAthleteReportsJoinScoutNames(t *testing.T) {
	router, db, cfg := setup(t)
	s1 := testutil.CreateUser(t, db, "Named Scout", "namedscout@example.com", user.RoleScout)
	s2 := testutil.CreateUser(t, db, "Second Scout", "secondscout@example.com", user.RoleScout)
	athlete := testutil.CreateUser(t, db, "Joined Athlete", "joinedathlete@example.com", user.RolePlayer)

	fileReport(t, router, testutil.AccessTokenFor(t, cfg, s1), athlete.ID, 7, "Older report")
	fileReport(t, router, testutil.AccessTokenFor(t, cfg, s2), athlete.ID, 9, "Newer report")

	rec := testutil.DoRequest(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/scout/athletes/%d/reports", athlete.ID),
		testutil.AccessTokenFor(t, cfg, athlete), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	list := testutil.DecodeBody(t, rec)["data"].([]interface{})
	require.Len(t, list, 2)
	names := []string{
		list[0].(map[string]interface{})["scout_name"].(string),
		list[1].(map[string]interface{})["scout_name"].(string),
	}
	assert.Contains(t, names, "Named Scout")
	assert.Contains(t, names, "Second Scout")
}

func TestObservedAthletesGrouped(t *testing.T) {
	router, db, cfg := setup(t)
	s := testutil.CreateUser(t, db, "Busy Scout", "busyscout@example.com", user.RoleScout)
	a1 := testutil.CreateUser(t, db, "Observed One", "observed1@example.com", user.RolePlayer)
	a2 := testutil.CreateUser(t, db, "Observed Two", "observed2@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, s)

	fileReport(t, router, tok, a1.ID, 5, "Initial")
	fileReport(t, router, tok, a1.ID, 8, "Improved")
	fileReport(t, router, tok, a2.ID, 6, "One look")

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/scout/observed", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	list := testutil.DecodeBody(t, rec)["data"].([]interface{})
	require.Len(t, list, 2, "grouped per athlete, not per report")

	byName := map[string]map[string]interface{}{}
	for _, raw := range list {
		entry := raw.(map[string]interface{})
		byName[entry["athlete"].(map[string]interface{})["full_name"].(string)] = entry
	}
	require.Contains(t, byName, "Observed One")
	assert.EqualValues(t, 2, byName["Observed One"]["report_count"])
	assert.EqualValues(t, 8, byName["Observed One"]["latest_rating"], "latest report wins")
	assert.EqualValues(t, 1, byName["Observed Two"]["report_count"])
}

func TestObservedScoutOnly(t *testing.T) {
	router, db, cfg := setup(t)
	athlete := testutil.CreateUser(t, db, "Curious Athlete", "curious@example.com", user.RolePlayer)

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/scout/observed",
		testutil.AccessTokenFor(t, cfg, athlete), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
