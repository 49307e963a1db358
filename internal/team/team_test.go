package team_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/team"
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
		&team.Team{}, &team.Invite{},
	)
	cfg := testutil.NewTestConfig(t)

	router := gin.New()
	api := router.Group("/api/v1")
	team.RegisterTeamRoutes(api, db, cfg)
	return router, db, cfg
}

func createTeam(t *testing.T, router *gin.Engine, tok, name string) uint {
	t.Helper()
	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/teams", tok, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint(testutil.DecodeBody(t, rec)["data"].(map[string]interface{})["ID"].(float64))
}

func TestCreateTeamCoachOnly(t *testing.T) {
	router, db, cfg := setup(t)
	player := testutil.CreateUser(t, db, "Not A Coach", "nocoach@example.com", user.RolePlayer)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/teams",
		testutil.AccessTokenFor(t, cfg, player), map[string]string{"name": "Wannabes"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateTeamStampsCoachProfile(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Team Coach", "teamcoach@example.com", user.RoleCoach)
	tok := testutil.AccessTokenFor(t, cfg, coach)

	teamID := createTeam(t, router, tok, "Tigers")

	var profile user.Coach
	require.NoError(t, db.Where("user_id = ?", coach.ID).First(&profile).Error)
	require.NotNil(t, profile.TeamID)
	assert.Equal(t, teamID, *profile.TeamID, "coach profile points at the new team")

	// A second team for the same coach conflicts.
	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/teams", tok, map[string]string{"name": "Lions"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetAndUpdateTeam(t *testing.T) {
	router, db, cfg := setup(t)
	owner := testutil.CreateUser(t, db, "Owner Coach", "ownercoach@example.com", user.RoleCoach)
	other := testutil.CreateUser(t, db, "Other Coach", "otherc@example.com", user.RoleCoach)
	ownerTok := testutil.AccessTokenFor(t, cfg, owner)

	teamID := createTeam(t, router, ownerTok, "Eagles")
	path := fmt.Sprintf("/api/v1/teams/%d", teamID)

	rec := testutil.DoRequest(t, router, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.DoRequest(t, router, http.MethodPut, path,
		testutil.AccessTokenFor(t, cfg, other), map[string]string{"name": "Stolen Eagles"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = testutil.DoRequest(t, router, http.MethodPut, path, ownerTok, map[string]string{"name": "Golden Eagles"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored team.Team
	require.NoError(t, db.First(&stored, teamID).Error)
	assert.Equal(t, "Golden Eagles", stored.Name)

	rec = testutil.DoRequest(t, router, http.MethodGet, "/api/v1/teams/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInviteRequiresTeam(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Teamless Coach", "teamless@example.com", user.RoleCoach)
	athlete := testutil.CreateUser(t, db, "Ready Athlete", "ready@example.com", user.RolePlayer)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/invites",
		testutil.AccessTokenFor(t, cfg, coach), map[string]interface{}{"athlete_id": athlete.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "coach must own a team first")
}

func TestInvitePendingUniqueness(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Invite Coach", "invitecoach@example.com", user.RoleCoach)
	athlete := testutil.CreateUser(t, db, "Invited Athlete", "invited@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, coach)
	createTeam(t, router, tok, "Inviters")

	payload := map[string]interface{}{"athlete_id": athlete.ID, "message": "join us"}
	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/invites", tok, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/invites", tok, payload)
	assert.Equal(t, http.StatusConflict, rec.Code, "one pending invite per pair")

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/invites", tok, map[string]interface{}{"athlete_id": 99999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Inviting a coach is not allowed.
	otherCoach := testutil.CreateUser(t, db, "Second Coach", "secondcoach@example.com", user.RoleCoach)
	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/invites", tok, map[string]interface{}{"athlete_id": otherCoach.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPendingInvitesRoleViews(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "View Coach", "viewcoach@example.com", user.RoleCoach)
	athlete := testutil.CreateUser(t, db, "View Athlete", "viewathlete@example.com", user.RolePlayer)
	coachTok := testutil.AccessTokenFor(t, cfg, coach)
	athleteTok := testutil.AccessTokenFor(t, cfg, athlete)
	createTeam(t, router, coachTok, "Viewers")

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/invites", coachTok, map[string]interface{}{"athlete_id": athlete.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Coach sees the athlete as counterpart.
	rec = testutil.DoRequest(t, router, http.MethodGet, "/api/v1/invites/pending", coachTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := testutil.DecodeBody(t, rec)["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "View Athlete", list[0].(map[string]interface{})["counterpart"].(map[string]interface{})["full_name"])

	// Athlete sees the coach as counterpart.
	rec = testutil.DoRequest(t, router, http.MethodGet, "/api/v1/invites/pending", athleteTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list = testutil.DecodeBody(t, rec)["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "View Coach", list[0].(map[string]interface{})["counterpart"].(map[string]interface{})["full_name"])
}

func TestRespondToInviteAttachesAthlete(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Accept Coach", "acceptcoach@example.com", user.RoleCoach)
	athlete := testutil.CreateUser(t, db, "Accept Athlete", "acceptathlete@example.com", user.RolePlayer)
	outsider := testutil.CreateUser(t, db, "Outside Athlete", "outsidea@example.com", user.RolePlayer)
	coachTok := testutil.AccessTokenFor(t, cfg, coach)
	teamID := createTeam(t, router, coachTok, "Accepters")

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/invites", coachTok, map[string]interface{}{"athlete_id": athlete.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	var invite team.Invite
	require.NoError(t, db.First(&invite).Error)
	respondPath := fmt.Sprintf("/api/v1/invites/%d/respond", invite.ID)

	// Only the invited athlete may respond.
	rec = testutil.DoRequest(t, router, http.MethodPost, respondPath,
		testutil.AccessTokenFor(t, cfg, outsider), map[string]bool{"accept": true})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = testutil.DoRequest(t, router, http.MethodPost, respondPath,
		testutil.AccessTokenFor(t, cfg, athlete), map[string]bool{"accept": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile user.Player
	require.NoError(t, db.Where("user_id = ?", athlete.ID).First(&profile).Error)
	require.NotNil(t, profile.TeamID)
	require.NotNil(t, profile.CoachID)
	assert.Equal(t, teamID, *profile.TeamID, "acceptance attaches team")
	assert.Equal(t, coach.ID, *profile.CoachID, "acceptance attaches coach")

	// Responding again conflicts.
	rec = testutil.DoRequest(t, router, http.MethodPost, respondPath,
		testutil.AccessTokenFor(t, cfg, athlete), map[string]bool{"accept": false})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeclineLeavesAthleteDetached(t *testing.T) {
	router, db, cfg := setup(t)
	coach := testutil.CreateUser(t, db, "Decline Coach", "declinecoach@example.com", user.RoleCoach)
	athlete := testutil.CreateUser(t, db, "Decline Athlete", "declineathlete@example.com", user.RolePlayer)
	coachTok := testutil.AccessTokenFor(t, cfg, coach)
	createTeam(t, router, coachTok, "Decliners")

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/invites", coachTok, map[string]interface{}{"athlete_id": athlete.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	var invite team.Invite
	require.NoError(t, db.First(&invite).Error)

	rec = testutil.DoRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/invites/%d/respond", invite.ID),
		testutil.AccessTokenFor(t, cfg, athlete), map[string]bool{"accept": false})
	require.Equal(t, http.StatusOK, rec.Code)

	var profile user.Player
	require.NoError(t, db.Where("user_id = ?", athlete.ID).First(&profile).Error)
	assert.Nil(t, profile.TeamID)
	assert.Nil(t, profile.CoachID)

	require.NoError(t, db.First(&invite, invite.ID).Error)
	assert.Equal(t, team.InviteDeclined, invite.Status)
}
