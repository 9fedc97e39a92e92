package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	domainerrors "github.com/scripturesanctuary/sanctuary-server/internal/errors"
	"github.com/scripturesanctuary/sanctuary-server/internal/id"
	"github.com/scripturesanctuary/sanctuary-server/internal/store"
)

// TagService manages tags and their association with favorites.
// Tag names are unique across all users. Only a tag's creator may rename or
// delete it; anyone may attach it to their own favorites.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(s store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: s, logger: logger}
}

// TagRequest names a tag.
type TagRequest struct {
	Name string `json:"name" validate:"notblank,max=50"`
}

func (r TagRequest) normalized() (string, error) {
	r.Name = strings.TrimSpace(r.Name)
	if err := validate.Validate(r); err != nil {
		return "", err
	}
	return r.Name, nil
}

// ListTags returns all tags ordered by name.
func (s *TagService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// GetTag returns a tag by ID.
func (s *TagService) GetTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		return nil, storeError(err, "tag")
	}
	return tag, nil
}

// CreateTag creates a tag owned by ownerID. A name already used by anyone
// fails with a duplicate-name error.
func (s *TagService) CreateTag(ctx context.Context, ownerID string, req TagRequest) (*domain.Tag, error) {
	name, err := req.normalized()
	if err != nil {
		return nil, err
	}

	tagID, err := id.Generate(id.PrefixTag)
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	now := time.Now()
	tag := &domain.Tag{
		ID:        tagID,
		Name:      name,
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, duplicateName(err, name)
	}

	s.logger.Info("tag created", "tag_id", tag.ID, "name", name, "user_id", ownerID)
	return tag, nil
}

// RenameTag renames a tag owned by userID.
func (s *TagService) RenameTag(ctx context.Context, userID, tagID string, req TagRequest) (*domain.Tag, error) {
	name, err := req.normalized()
	if err != nil {
		return nil, err
	}

	tag, err := s.ownedTag(ctx, userID, tagID, "rename")
	if err != nil {
		return nil, err
	}
	if tag.Name == name {
		return tag, nil
	}

	old := tag.Name
	tag.Name = name
	tag.Touch()
	if err := s.store.UpdateTag(ctx, tag); err != nil {
		return nil, duplicateName(err, name)
	}

	s.logger.Info("tag renamed", "tag_id", tag.ID, "from", old, "to", name)
	return tag, nil
}

// DeleteTag deletes a tag owned by userID. Favorites that carried it lose
// the association and are otherwise untouched.
func (s *TagService) DeleteTag(ctx context.Context, userID, tagID string) error {
	tag, err := s.ownedTag(ctx, userID, tagID, "delete")
	if err != nil {
		return err
	}
	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		return storeError(err, "tag")
	}

	s.logger.Info("tag deleted", "tag_id", tagID, "name", tag.Name, "user_id", userID)
	return nil
}

// TagsForFavorite returns the tags on a favorite.
func (s *TagService) TagsForFavorite(ctx context.Context, favID string) ([]*domain.Tag, error) {
	if _, err := s.store.GetFavorite(ctx, favID); err != nil {
		return nil, storeError(err, "favorite")
	}
	return s.store.ListTagsForFavorite(ctx, favID)
}

// SetFavoriteTags replaces the tags on a favorite owned by userID with the
// named tags. The replacement is atomic: an unknown name fails with a
// not-found error and leaves the old tags in place. An empty list clears
// every tag.
func (s *TagService) SetFavoriteTags(ctx context.Context, userID, favID string, names []string) ([]*domain.Tag, error) {
	fav, err := s.store.GetFavorite(ctx, favID)
	if err != nil {
		return nil, storeError(err, "favorite")
	}
	if !fav.OwnedBy(userID) {
		return nil, domainerrors.Forbidden("only the owner can tag this favorite")
	}

	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}

	if err := s.store.SetFavoriteTags(ctx, favID, cleaned); err != nil {
		return nil, storeError(err, "tag")
	}

	s.logger.Info("favorite tags replaced", "favorite_id", favID, "tags", cleaned)
	return s.store.ListTagsForFavorite(ctx, favID)
}

func (s *TagService) ownedTag(ctx context.Context, userID, tagID, action string) (*domain.Tag, error) {
	tag, err := s.GetTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if !tag.OwnedBy(userID) {
		return nil, domainerrors.Forbidden("only the tag's creator can " + action + " it")
	}
	return tag, nil
}

func duplicateName(err error, name string) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return domainerrors.DuplicateNamef("tag %q already exists", name).WithCause(err)
	}
	return storeError(err, "tag")
}
