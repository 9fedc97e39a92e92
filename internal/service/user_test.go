package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	domainerrors "github.com/scripturesanctuary/sanctuary-server/internal/errors"
)

func ptr[T any](v T) *T { return &v }

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	john := env.signup(t, "john_doe")
	jane := env.signup(t, "jane_smith")

	env.tag(t, john.ID, "inspiration")
	env.tag(t, jane.ID, "faith")
	env.tag(t, jane.ID, "hope")
	fav := env.favorite(t, john.ID, domain.NewReference("NIV", 1, 1, 1, 5))
	_, err := env.tags.SetFavoriteTags(ctx, john.ID, fav.ID, []string{"faith"})
	require.NoError(t, err)

	p, err := env.users.Profile(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, "john_doe", p.User.Username)
	assert.Equal(t, domain.DefaultImageURL, p.Avatar)
	require.Len(t, p.Favorites, 1)
	assert.Equal(t, "Genesis 1:1-5 (NIV)", p.Favorites[0].Title)
	assert.Equal(t, []string{"faith", "inspiration"}, tagNames(p.Tags))

	_, err = env.users.Profile(ctx, "user-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	john := env.signup(t, "john_doe")
	env.signup(t, "jane_smith")

	u, err := env.users.UpdateUser(ctx, john.ID, john.ID, UpdateUserRequest{
		FirstName: ptr("John"),
		ImageURL:  ptr("https://example.com/john.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "John", u.FirstName)
	assert.Equal(t, "https://example.com/john.png", u.Avatar())
	assert.Equal(t, "john_doe", u.Username)

	_, err = env.users.UpdateUser(ctx, "user-other", john.ID, UpdateUserRequest{FirstName: ptr("x")})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = env.users.UpdateUser(ctx, john.ID, john.ID, UpdateUserRequest{Username: ptr("jane_smith")})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = env.users.UpdateUser(ctx, john.ID, john.ID, UpdateUserRequest{Email: ptr("not-an-email")})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUpdateUser_Password(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	john := env.signup(t, "john_doe")

	_, err := env.users.UpdateUser(ctx, john.ID, john.ID, UpdateUserRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "new-password-1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = env.users.UpdateUser(ctx, john.ID, john.ID, UpdateUserRequest{
		CurrentPassword: "password123",
		NewPassword:     "new-password-1",
	})
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, LoginRequest{Username: "john_doe", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, LoginRequest{Username: "john_doe", Password: "new-password-1"})
	assert.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	john := env.signup(t, "john_doe")
	jane := env.signup(t, "jane_smith")
	faith := env.tag(t, john.ID, "faith")
	fav := env.favorite(t, john.ID, domain.NewReference("NIV", 1, 1, 1, 5))

	assert.ErrorIs(t, env.users.DeleteUser(ctx, jane.ID, john.ID), domainerrors.ErrForbidden)
	require.NoError(t, env.users.DeleteUser(ctx, john.ID, john.ID))

	_, err := env.users.GetUser(ctx, john.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = env.favorites.GetFavorite(ctx, fav.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = env.tags.GetTag(ctx, faith.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	users, err := env.users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "jane_smith", users[0].Username)
}
