package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	domainerrors "github.com/scripturesanctuary/sanctuary-server/internal/errors"
	"github.com/scripturesanctuary/sanctuary-server/internal/id"
	"github.com/scripturesanctuary/sanctuary-server/internal/reference"
	"github.com/scripturesanctuary/sanctuary-server/internal/store"
)

// CreatedLayout formats a favorite's creation time for display,
// e.g. "Tue Aug 06 2024, 3:04 PM".
const CreatedLayout = "Mon Jan 02 2006, 3:04 PM"

// tagFetchLimit bounds concurrent provider lookups for one tag page.
const tagFetchLimit = 4

// FavoriteTitle pairs a favorite with its display title.
type FavoriteTitle struct {
	Title string `json:"title"`
	ID    string `json:"id"`
}

// TagScripture is one favorite as shown on a tag page: the first verse of
// the passage plus whether the passage continues.
type TagScripture struct {
	Text  string `json:"text"`
	Title string `json:"title"`
	ID    string `json:"id"`
	More  bool   `json:"more"`
	Verse int    `json:"verse"`
}

// TagScriptures is a tag with the favorites carrying it.
type TagScriptures struct {
	Tag        *domain.Tag    `json:"tag"`
	Scriptures []TagScripture `json:"scriptures"`
}

// FavoriteDetail is a favorite resolved for display.
type FavoriteDetail struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Reference domain.Reference `json:"reference"`
	CreatedAt time.Time        `json:"created_at"`
	Created   string           `json:"created"`
	Verses    []domain.Verse   `json:"verses"`
	Tags      []*domain.Tag    `json:"tags"`
}

// FavoriteService manages favorites and derives their titles and text.
type FavoriteService struct {
	store     store.Store
	catalog   *catalog.Catalog
	resolver  Resolver
	formatter *reference.Formatter
	logger    *slog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(s store.Store, c *catalog.Catalog, resolver Resolver, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		store:     s,
		catalog:   c,
		resolver:  resolver,
		formatter: reference.NewFormatter(c),
		logger:    logger,
	}
}

// CreateFavorite saves ref for userID.
func (s *FavoriteService) CreateFavorite(ctx context.Context, userID string, ref domain.Reference) (*domain.Favorite, error) {
	if err := validateReference(s.catalog, ref); err != nil {
		return nil, err
	}

	favID, err := id.Generate(id.PrefixFavorite)
	if err != nil {
		return nil, fmt.Errorf("generate favorite ID: %w", err)
	}

	fav := &domain.Favorite{
		ID:        favID,
		UserID:    userID,
		Reference: ref,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateFavorite(ctx, fav); err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	s.logger.Info("favorite created",
		"favorite_id", fav.ID,
		"user_id", userID,
		"title", s.formatter.Title(ref),
	)
	return fav, nil
}

// GetFavorite returns a favorite by ID.
func (s *FavoriteService) GetFavorite(ctx context.Context, favID string) (*domain.Favorite, error) {
	fav, err := s.store.GetFavorite(ctx, favID)
	if err != nil {
		return nil, storeError(err, "favorite")
	}
	return fav, nil
}

// ListFavorites returns a user's favorites, oldest first.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	return s.store.ListFavoritesByUser(ctx, userID)
}

// DeleteFavorite removes a favorite owned by userID.
func (s *FavoriteService) DeleteFavorite(ctx context.Context, userID, favID string) error {
	fav, err := s.GetFavorite(ctx, favID)
	if err != nil {
		return err
	}
	if !fav.OwnedBy(userID) {
		return domainerrors.Forbidden("only the owner can delete this favorite")
	}

	if err := s.store.DeleteFavorite(ctx, favID); err != nil {
		return storeError(err, "favorite")
	}

	s.logger.Info("favorite deleted", "favorite_id", favID, "user_id", userID)
	return nil
}

// FormatTitles returns the display title of each favorite, in input order.
func (s *FavoriteService) FormatTitles(favs []*domain.Favorite) []FavoriteTitle {
	out := make([]FavoriteTitle, len(favs))
	for i, f := range favs {
		out[i] = FavoriteTitle{Title: s.formatter.Title(f.Reference), ID: f.ID}
	}
	return out
}

// Detail resolves a favorite's text and collects its tags.
func (s *FavoriteService) Detail(ctx context.Context, favID string) (*FavoriteDetail, error) {
	fav, err := s.GetFavorite(ctx, favID)
	if err != nil {
		return nil, err
	}

	verses, err := resolve(ctx, s.resolver, s.logger, fav.Reference)
	if err != nil {
		return nil, err
	}

	tags, err := s.store.ListTagsForFavorite(ctx, favID)
	if err != nil {
		return nil, fmt.Errorf("list favorite tags: %w", err)
	}

	return &FavoriteDetail{
		ID:        fav.ID,
		UserID:    fav.UserID,
		Title:     s.formatter.Title(fav.Reference),
		Reference: fav.Reference,
		CreatedAt: fav.CreatedAt,
		Created:   fav.CreatedAt.Format(CreatedLayout),
		Verses:    verses,
		Tags:      tags,
	}, nil
}

// ScripturesForTag lists every favorite carrying the tag with the first
// verse of its passage, in the order the favorites were tagged. Lookups run
// concurrently. A favorite whose text cannot be fetched is still listed,
// with empty text.
func (s *FavoriteService) ScripturesForTag(ctx context.Context, tagID string) (*TagScriptures, error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		return nil, storeError(err, "tag")
	}

	favs, err := s.store.ListFavoritesForTag(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("list tag favorites: %w", err)
	}

	out := make([]TagScripture, len(favs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tagFetchLimit)

	for i, fav := range favs {
		out[i] = TagScripture{
			Title: s.formatter.Title(fav.Reference),
			ID:    fav.ID,
			Verse: fav.Start(),
		}
		g.Go(func() error {
			verses, err := resolve(gctx, s.resolver, s.logger, fav.Reference)
			if err != nil || len(verses) == 0 {
				return nil
			}
			out[i].Text = verses[0].Text
			out[i].Verse = verses[0].Number
			out[i].More = len(verses) > 1
			return nil
		})
	}

	// Workers never return errors; only cancellation can stop the page.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &TagScriptures{Tag: tag, Scriptures: out}, nil
}
