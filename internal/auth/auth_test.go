package auth_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/athleo/athleo-backend/config"
	"github.com/athleo/athleo-backend/internal/auth"
	"github.com/athleo/athleo-backend/internal/testutil"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	db := testutil.NewTestDB(t,
		&user.User{}, &user.Player{}, &user.Coach{}, &user.RefreshToken{},
	)
	cfg := testutil.NewTestConfig(t)

	router := gin.New()
	api := router.Group("/api/v1")
	auth.RegisterAuthRoutes(api, db, cfg)
	return router, db, cfg
}

func registerPayload(email string) map[string]interface{} {
	return map[string]interface{}{
		"full_name":        "Jordan Miles",
		"email":            email,
		"password":         "hoops4life",
		"password_confirm": "hoops4life",
		"role":             "PLAYER",
	}
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	router, db, _ := setup(t)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("jordan@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := testutil.DecodeBody(t, rec)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])

	var u user.User
	require.NoError(t, db.Where("email = ?", "jordan@example.com").First(&u).Error)
	assert.Equal(t, user.RolePlayer, u.Role)
	assert.False(t, u.IsPublic, "new accounts start private")

	var p user.Player
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&p).Error)
	assert.Zero(t, p.GamesPlayed)
}

func TestRegisterNormalizesEmailCase(t *testing.T) {
	router, db, _ := setup(t)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("Jordan@Example.COM"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var u user.User
	require.NoError(t, db.Where("email = ?", "jordan@example.com").First(&u).Error)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	router, _, _ := setup(t)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("dup@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("dup@example.com"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	router, _, _ := setup(t)

	payload := registerPayload("bad@example.com")
	payload["password_confirm"] = "different"
	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	payload = registerPayload("bad2@example.com")
	payload["role"] = "REFEREE"
	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	router, db, _ := setup(t)
	testutil.CreateUser(t, db, "Sam Cole", "sam@example.com", user.RolePlayer)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "sam@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := testutil.DecodeBody(t, rec)
	assert.NotEmpty(t, body["access_token"])

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "sam@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown email gets the same error as a bad password.
	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshToken(t *testing.T) {
	router, _, _ := setup(t)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("fresh@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	refreshToken := testutil.DecodeBody(t, rec)["refresh_token"].(string)

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]string{
		"refresh_token": refreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, testutil.DecodeBody(t, rec)["access_token"])

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]string{
		"refresh_token": "not-a-real-token",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	router, _, _ := setup(t)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("bye@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	body := testutil.DecodeBody(t, rec)
	accessToken := body["access_token"].(string)
	refreshToken := body["refresh_token"].(string)

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/logout", accessToken, map[string]interface{}{
		"refresh_token": refreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]string{
		"refresh_token": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "revoked token must not refresh")
}

func TestGetProfileRequiresAuth(t *testing.T) {
	router, _, _ := setup(t)

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetProfileWithStaleToken(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Ghost User", "ghost@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, u)

	require.NoError(t, db.Unscoped().Delete(&user.User{}, u.ID).Error)

	rec := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/auth/me", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "orphaned session resolves to 401, not 500")
}

func TestUpdateProfile(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Old Name", "update@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, u)

	rec := testutil.DoRequest(t, router, http.MethodPut, "/api/v1/auth/me", tok, map[string]interface{}{
		"full_name": "New Name",
		"bio":       "Point guard",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated user.User
	require.NoError(t, db.First(&updated, u.ID).Error)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "Point guard", updated.Bio)
	assert.Equal(t, "update@example.com", updated.Email, "email is not editable")
}

func TestChangePassword(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Pwd User", "pwd@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, u)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/change-password", tok, map[string]string{
		"old_password":     "wrong-old",
		"new_password":     "newpassword1",
		"password_confirm": "newpassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/change-password", tok, map[string]string{
		"old_password":     "password123",
		"new_password":     "newpassword1",
		"password_confirm": "newpassword1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "pwd@example.com",
		"password": "newpassword1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestToggleVisibility(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Vis User", "vis@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, u)

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/me/toggle-visibility", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, testutil.DecodeBody(t, rec)["is_public"])

	rec = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/me/toggle-visibility", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, testutil.DecodeBody(t, rec)["is_public"])
}

func TestDeactivateAccount(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Leaving User", "gone@example.com", user.RolePlayer)
	tok := testutil.AccessTokenFor(t, cfg, u)

	rec := testutil.DoRequest(t, router, http.MethodDelete, "/api/v1/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated user.User
	require.NoError(t, db.First(&updated, u.ID).Error)
	assert.False(t, updated.IsActive)
}

func TestRegisterStorageFailureIsNotConflict(t *testing.T) {
	router, db, _ := setup(t)

	require.NoError(t, db.Migrator().DropTable(&user.User{}))

	rec := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("broken@example.com"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "a failed lookup must not masquerade as a duplicate email")
}

func TestUpdateAvatarStoresFile(t *testing.T) {
	router, db, cfg := setup(t)
	u := testutil.CreateUser(t, db, "Ava Tarr", "ava@example.com", user.RolePlayer)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "face.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/me/avatar", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testutil.AccessTokenFor(t, cfg, u))

	rec := testutil.DoRequestRaw(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored user.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	require.True(t, strings.HasPrefix(stored.Avatar, "/uploads/avatars/"), stored.Avatar)

	saved := filepath.Join(cfg.App.UploadDir, "avatars", filepath.Base(stored.Avatar))
	_, err = os.Stat(saved)
	assert.NoError(t, err, "uploaded file lands under the configured upload dir")
}
