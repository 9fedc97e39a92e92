package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
)

func TestListUsersHandler(t *testing.T) {
	ts := setupTestServer(t)
	ts.signup(t, "jane_smith")
	ts.signup(t, "batman")

	resp := ts.api.Get("/api/v1/users")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[struct {
		Users []UserResponse `json:"users"`
	}](t, resp)
	require.Len(t, env.Data.Users, 2)
	assert.Equal(t, "batman", env.Data.Users[0].Username)
	assert.Equal(t, "jane_smith", env.Data.Users[1].Username)
	assert.NotContains(t, resp.Body.String(), "password")
}

func TestGetUserProfileHandler(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.signup(t, "john_doe")
	other, _ := ts.signup(t, "jane_smith")

	first := ts.createFavorite(t, token, genesisOneOneToFive)
	second := ts.createFavorite(t, token, map[string]any{"translation": "KJV", "book": 3, "chapter": 4})
	ts.createTag(t, token, "inspiration")
	ts.createTag(t, other, "faith")
	resp := ts.api.Put("/api/v1/favorites/"+second+"/tags", bearerHeader(token), map[string]any{"tags": []string{"faith"}})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/users/" + userID)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	p := decode[ProfileResponse](t, resp).Data
	assert.Equal(t, "john_doe", p.User.Username)
	assert.Equal(t, domain.DefaultImageURL, p.User.Avatar)
	assert.Equal(t, []FavoriteTitleResponse{
		{ID: first, Title: "Genesis 1:1-5 (NIV)"},
		{ID: second, Title: "Leviticus 4 (KJV)"},
	}, p.Favorites)
	assert.Equal(t, []string{"faith", "inspiration"}, responseTagNames(p.Tags))

	resp = ts.api.Get("/api/v1/users/usr-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateUserHandler(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.signup(t, "john_doe")
	other, otherID := ts.signup(t, "jane_smith")

	resp := ts.api.Patch("/api/v1/users/"+otherID, bearerHeader(token), map[string]any{"first_name": "Mallory"})
	require.Equal(t, http.StatusForbidden, resp.Code, resp.Body.String())
	assert.Equal(t, "FORBIDDEN", decode[any](t, resp).Code)

	resp = ts.api.Patch("/api/v1/users/"+userID, bearerHeader(token), map[string]any{
		"first_name": "John",
		"last_name":  "Doe",
		"image_url":  "https://example.com/john.png",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	u := decode[UserResponse](t, resp).Data
	assert.Equal(t, "John Doe", u.FullName)
	assert.Equal(t, "https://example.com/john.png", u.Avatar)
	assert.Equal(t, "john_doe@example.com", u.Email)

	resp = ts.api.Patch("/api/v1/users/"+otherID, bearerHeader(other), map[string]any{"username": "JOHN_DOE"})
	require.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())
	assert.Equal(t, "ALREADY_EXISTS", decode[any](t, resp).Code)
}

func TestUpdateUserHandler_Password(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.signup(t, "john_doe")

	resp := ts.api.Patch("/api/v1/users/"+userID, bearerHeader(token), map[string]any{
		"current_password": "not-my-password",
		"new_password":     "correct-horse",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())
	assert.Equal(t, "INVALID_CREDENTIALS", decode[any](t, resp).Code)

	resp = ts.api.Patch("/api/v1/users/"+userID, bearerHeader(token), map[string]any{
		"current_password": "password123",
		"new_password":     "correct-horse",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{"username": "john_doe", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	resp = ts.api.Post("/api/v1/auth/login", map[string]any{"username": "john_doe", "password": "correct-horse"})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestDeleteUserHandler(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.signup(t, "john_doe")
	other, otherID := ts.signup(t, "jane_smith")

	favID := ts.createFavorite(t, token, genesisOneOneToFive)
	tagID := ts.createTag(t, token, "faith")

	resp := ts.api.Delete("/api/v1/users/"+userID, bearerHeader(other))
	require.Equal(t, http.StatusForbidden, resp.Code, resp.Body.String())

	resp = ts.api.Delete("/api/v1/users/"+userID, bearerHeader(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "Account deleted", decode[MessageResponse](t, resp).Data.Message)

	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/users/"+userID).Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/favorites/"+favID).Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/tags/"+tagID).Code)

	// The token outlives the account but no longer authenticates.
	resp = ts.api.Post("/api/v1/tags", bearerHeader(token), map[string]any{"name": "hope"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	assert.Equal(t, http.StatusOK, ts.api.Get("/api/v1/users/"+otherID).Code)
}
