// Package testutil holds shared helpers for package-level HTTP tests. Tests
// run against an in-memory SQLite database so they need no external services.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/pkg/token"
	"github.com/athleo/athleo-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestDB opens a fresh in-memory database and migrates the given models.
func NewTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(models...))
	return db
}

// NewTestConfig returns a config with deterministic secrets and short expiries.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.UploadDir = t.TempDir()
	cfg.JWT.AccessTokenSecret = "test-access-secret"
	cfg.JWT.AccessTokenExpiryMinutes = 15
	cfg.JWT.RefreshTokenSecret = "test-refresh-secret"
	cfg.JWT.RefreshTokenExpiryDays = 7
	cfg.Dashboard.LowActivityMinLogs = 2
	cfg.Dashboard.LowActivityWindowDays = 7
	return cfg
}

// CreateUser inserts a user with a hashed password and, for players and
// coaches, the matching profile row.
func CreateUser(t *testing.T, db *gorm.DB, fullName, email string, role user.Role) *user.User {
	t.Helper()

	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)

	u := &user.User{
		FullName: fullName,
		Email:    email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)

	switch role {
	case user.RolePlayer:
		require.NoError(t, db.Create(&user.Player{UserID: u.ID}).Error)
	case user.RoleCoach:
		require.NoError(t, db.Create(&user.Coach{UserID: u.ID}).Error)
	}
	return u
}

// AccessTokenFor mints a valid access token for the given user.
func AccessTokenFor(t *testing.T, cfg *config.Config, u *user.User) string {
	t.Helper()

	tok, err := token.GenerateAccessToken(u.ID, u.Email, string(u.Role), cfg.JWT.AccessTokenSecret, cfg.JWT.AccessTokenExpiryMinutes)
	require.NoError(t, err)
	return tok
}

// DoRequest performs a JSON request against the router. An empty bearer token
// leaves the Authorization header unset.
func DoRequest(t *testing.T, router *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// DecodeBody unmarshals a recorded JSON response into a map.
func DecodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func DoRequestRaw(t *testing.T, router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
