package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	"github.com/scripturesanctuary/sanctuary-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "john_doe")

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "john_doe", got.Username)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, "john_doe@example.com", got.Email)
	assert.WithinDuration(t, u.CreatedAt, got.CreatedAt, time.Millisecond)

	byName, err := s.GetUserByUsername(ctx, "JOHN_DOE")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	createTestUser(t, s, "batman")

	dup := &domain.User{ID: "user-other", Username: "Batman", PasswordHash: "x", Email: "b@example.com",
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	err := s.CreateUser(context.Background(), dup)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "user-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "jane_smith")
	u.FirstName = "Jane"
	u.ImageURL = "https://example.com/jane.png"
	u.Touch()
	require.NoError(t, s.UpdateUser(ctx, u))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "https://example.com/jane.png", got.ImageURL)

	missing := *u
	missing.ID = "user-missing"
	assert.ErrorIs(t, s.UpdateUser(ctx, &missing), store.ErrNotFound)
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	createTestUser(t, s, "john_doe")
	createTestUser(t, s, "batman")

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "batman", users[0].Username)
	assert.Equal(t, "john_doe", users[1].Username)
}

func TestDeleteUser_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "john_doe")
	other := createTestUser(t, s, "jane_smith")

	fav := createTestFavorite(t, s, owner.ID, domain.NewReference("NIV", 1, 1, 1, 5))
	otherFav := createTestFavorite(t, s, other.ID, domain.NewReference("KJV", 2, 3, 10, 15))
	ownedTag := createTestTag(t, s, owner.ID, "faith")
	createTestTag(t, s, other.ID, "hope")
	require.NoError(t, s.SetFavoriteTags(ctx, otherFav.ID, []string{"faith", "hope"}))

	require.NoError(t, s.DeleteUser(ctx, owner.ID))

	_, err := s.GetFavorite(ctx, fav.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTag(ctx, ownedTag.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	tags, err := s.ListTagsForFavorite(ctx, otherFav.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "hope", tags[0].Name)

	assert.ErrorIs(t, s.DeleteUser(ctx, owner.ID), store.ErrNotFound)
}
