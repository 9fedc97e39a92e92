package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scripturesanctuary/sanctuary-server/internal/auth"
	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	domainerrors "github.com/scripturesanctuary/sanctuary-server/internal/errors"
	"github.com/scripturesanctuary/sanctuary-server/internal/store"
)

// Profile is a user's public page: their favorites as titles and every tag
// they own or have put on a favorite.
type Profile struct {
	User      *domain.User    `json:"user"`
	FullName  string          `json:"full_name"`
	Avatar    string          `json:"avatar"`
	Favorites []FavoriteTitle `json:"favorites"`
	Tags      []*domain.Tag   `json:"tags"`
}

// UpdateUserRequest holds the fields a user may change on their account.
// Nil fields are left alone. Changing the password requires the current one.
type UpdateUserRequest struct {
	Username        *string `json:"username,omitempty" validate:"omitempty,username,min=3,max=50"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName       *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName        *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	ImageURL        *string `json:"image_url,omitempty" validate:"omitempty,url"`
	ProfileImageURL *string `json:"profile_image_url,omitempty" validate:"omitempty,url"`
	CurrentPassword string  `json:"current_password,omitempty"`
	NewPassword     string  `json:"new_password,omitempty" validate:"omitempty,min=8,max=1024"`
}

// UserService manages accounts and profiles.
type UserService struct {
	store        store.Store
	favorites    *FavoriteService
	hashPassword func(string) (string, error)
	logger       *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(s store.Store, favorites *FavoriteService, logger *slog.Logger) *UserService {
	return &UserService{
		store:        s,
		favorites:    favorites,
		hashPassword: auth.HashPassword,
		logger:       logger,
	}
}

// ListUsers returns all users ordered by username.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return u, nil
}

// Profile builds a user's profile page.
func (s *UserService) Profile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	favs, err := s.favorites.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	tags, err := s.store.ListProfileTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list profile tags: %w", err)
	}

	return &Profile{
		User:      u,
		FullName:  u.FullName(),
		Avatar:    u.Avatar(),
		Favorites: s.favorites.FormatTitles(favs),
		Tags:      tags,
	}, nil
}

// UpdateUser applies req to the account. Users may only edit themselves.
func (s *UserService) UpdateUser(ctx context.Context, actorID, userID string, req UpdateUserRequest) (*domain.User, error) {
	if actorID != userID {
		return nil, domainerrors.Forbidden("you can only edit your own account")
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.NewPassword != "" {
		ok, err := auth.VerifyPassword(u.PasswordHash, req.CurrentPassword)
		if err != nil {
			return nil, fmt.Errorf("verify password: %w", err)
		}
		if !ok {
			return nil, domainerrors.InvalidCredentials("current password is incorrect")
		}
		hash, err := s.hashPassword(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	setString(&u.Username, req.Username)
	setString(&u.Email, req.Email)
	setString(&u.FirstName, req.FirstName)
	setString(&u.LastName, req.LastName)
	setString(&u.ImageURL, req.ImageURL)
	setString(&u.ProfileImageURL, req.ProfileImageURL)
	u.Touch()

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, storeError(err, "user")
	}

	s.logger.Info("user updated", "user_id", u.ID, "password_changed", req.NewPassword != "")
	return u, nil
}

// DeleteUser removes the account with its favorites and owned tags. Users
// may only delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID string) error {
	if actorID != userID {
		return domainerrors.Forbidden("you can only delete your own account")
	}
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return storeError(err, "user")
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
