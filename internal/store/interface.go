// Package store defines the persistence interface for the Scripture Sanctuary server.
package store

import (
	"context"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Lookups return ErrNotFound for missing rows; inserts and renames return
// ErrAlreadyExists on a uniqueness conflict.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	// DeleteUser removes the user, their favorites and the tags they own.
	DeleteUser(ctx context.Context, id string) error

	// Favorites
	CreateFavorite(ctx context.Context, fav *domain.Favorite) error
	GetFavorite(ctx context.Context, id string) (*domain.Favorite, error)
	ListFavoritesByUser(ctx context.Context, userID string) ([]*domain.Favorite, error)
	DeleteFavorite(ctx context.Context, id string) error

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, tag *domain.Tag) error
	DeleteTag(ctx context.Context, id string) error

	// Favorite tags
	//
	// SetFavoriteTags replaces the favorite's tags with the named tags in one
	// transaction. An unknown name fails with ErrNotFound and changes nothing.
	SetFavoriteTags(ctx context.Context, favoriteID string, tagNames []string) error
	ListTagsForFavorite(ctx context.Context, favoriteID string) ([]*domain.Tag, error)
	// ListFavoritesForTag returns favorites in the order they were tagged.
	ListFavoritesForTag(ctx context.Context, tagID string) ([]*domain.Favorite, error)
	// ListProfileTags returns the tags a user owns plus the tags attached to
	// any of the user's favorites, without duplicates, ordered by name.
	ListProfileTags(ctx context.Context, userID string) ([]*domain.Tag, error)
}
