package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	domainerrors "github.com/scripturesanctuary/sanctuary-server/internal/errors"
	"github.com/scripturesanctuary/sanctuary-server/internal/scripture"
)

func TestCreateFavorite(t *testing.T) {
	env := newTestEnv(t)
	u := env.signup(t, "john_doe")

	fav := env.favorite(t, u.ID, domain.NewReference("niv", 1, 1, 1, 5))
	assert.Equal(t, "NIV", fav.Translation)

	_, err := env.favorites.CreateFavorite(context.Background(), u.ID, domain.NewReference("NIV", 1, 99, 0, 0))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestFormatTitles(t *testing.T) {
	env := newTestEnv(t)
	u := env.signup(t, "john_doe")

	favs := []*domain.Favorite{
		env.favorite(t, u.ID, domain.NewReference("NIV", 1, 1, 1, 5)),
		env.favorite(t, u.ID, domain.NewReference("KJV", 2, 3, 10, 15)),
		env.favorite(t, u.ID, domain.NewReference("KJV", 3, 4, 0, 0)),
		env.favorite(t, u.ID, domain.NewReference("ESV", 19, 23, 0, 4)),
	}

	want := []FavoriteTitle{
		{Title: "Genesis 1:1-5 (NIV)", ID: favs[0].ID},
		{Title: "Exodus 3:10-15 (KJV)", ID: favs[1].ID},
		{Title: "Leviticus 4 (KJV)", ID: favs[2].ID},
		{Title: "Psalms 23:1-4 (ESV)", ID: favs[3].ID},
	}
	if diff := cmp.Diff(want, env.favorites.FormatTitles(favs)); diff != "" {
		t.Errorf("FormatTitles() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, env.favorites.FormatTitles(nil))
}

func TestDeleteFavorite_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	john := env.signup(t, "john_doe")
	jane := env.signup(t, "jane_smith")
	fav := env.favorite(t, john.ID, domain.NewReference("NIV", 1, 1, 1, 5))

	err := env.favorites.DeleteFavorite(ctx, jane.ID, fav.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.NoError(t, env.favorites.DeleteFavorite(ctx, john.ID, fav.ID))

	_, err = env.favorites.GetFavorite(ctx, fav.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDetail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.signup(t, "john_doe")
	fav := env.favorite(t, u.ID, domain.NewReference("NIV", 1, 1, 1, 3))
	env.tag(t, u.ID, "faith")
	_, err := env.tags.SetFavoriteTags(ctx, u.ID, fav.ID, []string{"faith"})
	require.NoError(t, err)

	d, err := env.favorites.Detail(ctx, fav.ID)
	require.NoError(t, err)
	assert.Equal(t, "Genesis 1:1-3 (NIV)", d.Title)
	assert.Equal(t, fav.CreatedAt.Format(CreatedLayout), d.Created)
	require.Len(t, d.Verses, 3)
	assert.Equal(t, "1.1.1", d.Verses[0].Text)
	require.Len(t, d.Tags, 1)
	assert.Equal(t, "faith", d.Tags[0].Name)

	_, err = env.favorites.Detail(ctx, "fav-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCreatedLayout(t *testing.T) {
	ts := time.Date(2024, time.August, 6, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "Tue Aug 06 2024, 3:04 PM", ts.Format(CreatedLayout))
}

func TestScripturesForTag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	john := env.signup(t, "john_doe")
	jane := env.signup(t, "jane_smith")
	hope := env.tag(t, john.ID, "hope")

	single := env.favorite(t, jane.ID, domain.NewReference("NIV", 43, 3, 16, 0))
	ranged := env.favorite(t, john.ID, domain.NewReference("KJV", 2, 3, 10, 15))
	whole := env.favorite(t, john.ID, domain.NewReference("KJV", 3, 4, 0, 0))
	broken := env.favorite(t, john.ID, domain.NewReference("NIV", 1, 2, 0, 0))
	env.resolver.fail[2] = scripture.ErrProviderUnavailable

	for _, f := range []*domain.Favorite{ranged, single, broken, whole} {
		_, err := env.tags.SetFavoriteTags(ctx, f.UserID, f.ID, []string{"hope"})
		require.NoError(t, err)
	}

	got, err := env.favorites.ScripturesForTag(ctx, hope.ID)
	require.NoError(t, err)
	assert.Equal(t, "hope", got.Tag.Name)

	want := []TagScripture{
		{Text: "2.3.10", Title: "Exodus 3:10-15 (KJV)", ID: ranged.ID, More: true, Verse: 10},
		{Text: "43.3.16", Title: "John 3:16 (NIV)", ID: single.ID, More: false, Verse: 16},
		{Text: "", Title: "Genesis 2 (NIV)", ID: broken.ID, More: false, Verse: 0},
		{Text: "3.4.1", Title: "Leviticus 4 (KJV)", ID: whole.ID, More: true, Verse: 1},
	}
	if diff := cmp.Diff(want, got.Scriptures); diff != "" {
		t.Errorf("ScripturesForTag() mismatch (-want +got):\n%s", diff)
	}
}

func TestScripturesForTag_Empty(t *testing.T) {
	env := newTestEnv(t)
	u := env.signup(t, "john_doe")
	tag := env.tag(t, u.ID, "hope")

	got, err := env.favorites.ScripturesForTag(context.Background(), tag.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Scriptures)

	_, err = env.favorites.ScripturesForTag(context.Background(), "tag-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestScripturesForTag_Canceled(t *testing.T) {
	env := newTestEnv(t)
	u := env.signup(t, "john_doe")
	tag := env.tag(t, u.ID, "hope")
	fav := env.favorite(t, u.ID, domain.NewReference("NIV", 1, 1, 0, 0))
	_, err := env.tags.SetFavoriteTags(context.Background(), u.ID, fav.ID, []string{"hope"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = env.favorites.ScripturesForTag(ctx, tag.ID)
	assert.ErrorIs(t, err, context.Canceled)
}
