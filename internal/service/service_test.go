package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/scripturesanctuary/sanctuary-server/internal/auth"
	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	"github.com/scripturesanctuary/sanctuary-server/internal/scripture"
	"github.com/scripturesanctuary/sanctuary-server/internal/store/sqlite"
)

var cheapParams = auth.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func cheapHash(pw string) (string, error) { return auth.HashPasswordWithParams(pw, cheapParams) }

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// fakeChapterVerses is the length of every chapter fakeResolver serves.
const fakeChapterVerses = 20

// fakeResolver serves chapters of numbered verses "b.c.v"; chapters listed
// in fail return err.
type fakeResolver struct {
	mu    sync.Mutex
	fail  map[int]error
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, ref domain.Reference) ([]domain.Verse, error) {
	f.mu.Lock()
	f.calls++
	err := f.fail[ref.Chapter]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	chapter := make([]domain.Verse, fakeChapterVerses)
	for i := range chapter {
		text := fmt.Sprintf("%d.%d.%d", ref.Book, ref.Chapter, i+1)
		chapter[i] = domain.Verse{Number: i + 1, RawText: text + "<S>1</S>", Text: text}
	}
	return scripture.SelectVerses(chapter, ref)
}

type testEnv struct {
	store     *sqlite.Store
	resolver  *fakeResolver
	catalog   *catalog.Catalog
	auth      *AuthService
	search    *SearchService
	favorites *FavoriteService
	tags      *TagService
	users     *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := discardLogger()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	tokens, err := auth.NewTokenService(make([]byte, auth.KeySize), time.Hour)
	require.NoError(t, err)

	cat := catalog.Default()
	resolver := &fakeResolver{fail: map[int]error{}}
	favorites := NewFavoriteService(s, cat, resolver, logger)

	env := &testEnv{
		store:     s,
		resolver:  resolver,
		catalog:   cat,
		auth:      NewAuthService(s, tokens, logger),
		search:    NewSearchService(cat, resolver, logger),
		favorites: favorites,
		tags:      NewTagService(s, logger),
		users:     NewUserService(s, favorites, logger),
	}
	env.auth.hashPassword = cheapHash
	env.users.hashPassword = cheapHash
	return env
}

func (e *testEnv) signup(t *testing.T, username string) *domain.User {
	t.Helper()
	resp, err := e.auth.Signup(context.Background(), SignupRequest{
		Username: username,
		Password: "password123",
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return resp.User
}

func (e *testEnv) favorite(t *testing.T, userID string, ref domain.Reference) *domain.Favorite {
	t.Helper()
	fav, err := e.favorites.CreateFavorite(context.Background(), userID, ref)
	require.NoError(t, err)
	return fav
}

func (e *testEnv) tag(t *testing.T, userID, name string) *domain.Tag {
	t.Helper()
	tag, err := e.tags.CreateTag(context.Background(), userID, TagRequest{Name: name})
	require.NoError(t, err)
	return tag
}
