package directory_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/directory"
	"github.com/athleo/athleo-backend/internal/testutil"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	db := testutil.NewTestDB(t, &user.User{}, &user.Player{}, &user.Coach{})
	cfg := testutil.NewTestConfig(t)

	router := gin.New()
	api := router.Group("/api/v1")
	directory.RegisterDirectoryRoutes(api, db, cfg)
	return router, db, cfg
}

func makePublic(t *testing.T, db *gorm.DB, u *user.User) {
	t.Helper()
	require.NoError(t, db.Model(u).Update("is_public", true).Error)
}

func dataList(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()
	list, ok := body["data"].([]interface{})
	require.True(t, ok, "expected data to be a list, got %T", body["data"])
	return list
}

func TestSearchOnlyReturnsPublicProfiles(t *testing.T) {
	router, db, _ := setup(t)

	visible := testutil.CreateUser(t, db, "Alice Runner", "alice@example.com", user.RolePlayer)
	makePublic(t, db, visible)
	testutil.CreateUser(t, db, "Alice Hidden", "hidden@example.com", user.RolePlayer)

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/search?q=alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	list := dataList(t, testutil.DecodeBody(t, rec))
	require.Len(t, list, 1)
	assert.Equal(t, "Alice Runner", list[0].(map[string]interface{})["full_name"])
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	router, db, _ := setup(t)

	u := testutil.CreateUser(t, db, "Marta Silva", "marta@example.com", user.RolePlayer)
	makePublic(t, db, u)

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/search?q=MARTA", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, dataList(t, testutil.DecodeBody(t, rec)), 1)
}

func TestSearchExcludesCaller(t *testing.T) {
	router, db, cfg := setup(t)

	self := testutil.CreateUser(t, db, "Devon Self", "devon@example.com", user.RolePlayer)
	makePublic(t, db, self)
	tok := testutil.AccessTokenFor(t, cfg, self)

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/search?q=devon", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, dataList(t, testutil.DecodeBody(t, rec)))

	// Anonymous callers still see the profile.
	rec = testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/search?q=devon", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, dataList(t, testutil.DecodeBody(t, rec)), 1)
}

func TestTeamAthletesForNonCoachIsEmptyList(t *testing.T) {
	router, db, cfg := setup(t)

	player := testutil.CreateUser(t, db, "Just A Player", "player@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, player)

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/team-athletes", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, "non-coach callers get an empty list, not an error")
	assert.Empty(t, dataList(t, testutil.DecodeBody(t, rec)))
}

func TestTeamAthletesForCoach(t *testing.T) {
	router, db, cfg := setup(t)

	coach := testutil.CreateUser(t, db, "Coach Kim", "coach@example.com", user.RoleCoach)
	teamID := uint(7)
	require.NoError(t, db.Model(&user.Coach{}).Where("user_id = ?", coach.ID).Update("team_id", teamID).Error)

	for i := 0; i < 3; i++ {
		p := testutil.CreateUser(t, db, fmt.Sprintf("Athlete %d", i), fmt.Sprintf("athlete%d@example.com", i), user.RolePlayer)
		require.NoError(t, db.Model(&user.Player{}).Where("user_id = ?", p.ID).Update("team_id", teamID).Error)
	}
	testutil.CreateUser(t, db, "Free Agent", "free@example.com", user.RolePlayer)

	tok := testutil.AccessTokenFor(t, cfg, coach)
	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/team-athletes", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, dataList(t, testutil.DecodeBody(t, rec)), 3)
}

func TestAdvancedSearchFilters(t *testing.T) {
	router, db, cfg := setup(t)

	guard := testutil.CreateUser(t, db, "Guard One", "guard@example.com", user.RolePlayer)
	makePublic(t, db, guard)
	require.NoError(t, db.Model(&user.Player{}).Where("user_id = ?", guard.ID).Update("position", "guard").Error)

	center := testutil.CreateUser(t, db, "Center Two", "center@example.com", user.RolePlayer)
	makePublic(t, db, center)
	require.NoError(t, db.Model(&user.Player{}).Where("user_id = ?", center.ID).Update("position", "center").Error)

	viewer := testutil.CreateUser(t, db, "Scout Eyes", "scout@example.com", user.RoleScout)
	tok := testutil.AccessTokenFor(t, cfg, viewer)

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/athletes/advanced?position=Guard", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list := dataList(t, testutil.DecodeBody(t, rec))
	require.Len(t, list, 1)
	assert.Equal(t, "Guard One", list[0].(map[string]interface{})["full_name"])

	rec = testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/athletes/advanced?min_age=30&max_age=20", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeaturedAthletesOrdering(t *testing.T) {
	router, db, _ := setup(t)

	star := testutil.CreateUser(t, db, "Star Player", "star@example.com", user.RolePlayer)
	makePublic(t, db, star)
	require.NoError(t, db.Model(&user.Player{}).Where("user_id = ?", star.ID).Update("games_played", 40).Error)

	rookie := testutil.CreateUser(t, db, "Rookie Player", "rookie@example.com", user.RolePlayer)
	makePublic(t, db, rookie)

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/featured", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := dataList(t, testutil.DecodeBody(t, rec))
	require.Len(t, list, 2)
	assert.Equal(t, "Star Player", list[0].(map[string]interface{})["full_name"])
}

func TestGetPlayerStats(t *testing.T) {
	router, db, _ := setup(t)

	p := testutil.CreateUser(t, db, "Stat Holder", "stats@example.com", user.RolePlayer)
	require.NoError(t, db.Model(&user.Player{}).Where("user_id = ?", p.ID).
		Updates(map[string]interface{}{"games_played": 10, "wins": 6, "losses": 4}).Error)

	rec := testutil.DoRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/directory/players/%d/stats", p.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := testutil.DecodeBody(t, rec)["data"].(map[string]interface{})
	assert.EqualValues(t, 10, data["games_played"])
	assert.EqualValues(t, 6, data["wins"])

	rec = testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/players/99999/stats", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePlayerStatsAuthorization(t *testing.T) {
	router, db, cfg := setup(t)

	coach := testutil.CreateUser(t, db, "Own Coach", "owncoach@example.com", user.RoleCoach)
	other := testutil.CreateUser(t, db, "Other Coach", "othercoach@example.com", user.RoleCoach)
	athlete := testutil.CreateUser(t, db, "Coached Athlete", "coached@example.com", user.RolePlayer)
	require.NoError(t, db.Model(&user.Player{}).Where("user_id = ?", athlete.ID).Update("coach_id", coach.ID).Error)

	path := fmt.Sprintf("/api/v1/directory/players/%d/stats", athlete.ID)
	payload := map[string]int{"points": 120, "assists": 33}

	rec := testutil.DoRequest(t, router, http.MethodPut, path, testutil.AccessTokenFor(t, cfg, other), payload)
	assert.Equal(t, http.StatusForbidden, rec.Code, "only the athlete's own coach can write")

	rec = testutil.DoRequest(t, router, http.MethodPut, path, testutil.AccessTokenFor(t, cfg, coach), payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored user.Player
	require.NoError(t, db.Where("user_id = ?", athlete.ID).First(&stored).Error)
	assert.Equal(t, 120, stored.Points)
	assert.Equal(t, 33, stored.Assists)
	assert.Zero(t, stored.GamesPlayed, "games_played is not writable through the stats patch")
}

func TestUserVisibility(t *testing.T) {
	router, db, _ := setup(t)

	u := testutil.CreateUser(t, db, "Vis Check", "vischeck@example.com", user.RolePlayer)

	rec := testutil.DoRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/directory/users/%d/visibility", u.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := testutil.DecodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_public"])

	rec = testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/users/424242/visibility", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchNoMatchesReturnsEmptyList(t *testing.T) {
	router, _, _ := setup(t)

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/directory/search?q=nobodyatall", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, dataList(t, testutil.DecodeBody(t, rec)), "no matches serialize as an empty array, not null")
}
