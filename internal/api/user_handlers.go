package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	"github.com/scripturesanctuary/sanctuary-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns all users ordered by username",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user profile",
		Description: "Returns a user with their favorite titles and every tag they own or have put on a favorite",
		Tags:        []string{"Users"},
	}, s.handleGetUserProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{id}",
		Summary:     "Update user",
		Description: "Updates your own account. Changing the password requires the current one.",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{id}",
		Summary:     "Delete user",
		Description: "Deletes your own account with its favorites and tags",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleDeleteUser)
}

// UserResponse contains user data in API responses.
type UserResponse struct {
	ID              string    `json:"id" doc:"User ID"`
	Username        string    `json:"username" doc:"Username"`
	Email           string    `json:"email" doc:"Email address"`
	FirstName       string    `json:"first_name" doc:"First name"`
	LastName        string    `json:"last_name" doc:"Last name"`
	FullName        string    `json:"full_name" doc:"First and last name"`
	Avatar          string    `json:"avatar" doc:"Avatar URL, or the default image"`
	ProfileImageURL string    `json:"profile_image_url,omitempty" doc:"Profile banner URL"`
	CreatedAt       time.Time `json:"created_at" doc:"Creation time"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		FullName:        u.FullName(),
		Avatar:          u.Avatar(),
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
	}
}

// ListUsersOutput wraps the user list for Huma.
type ListUsersOutput struct {
	Body struct {
		Users []UserResponse `json:"users" doc:"Users ordered by username"`
	}
}

// UserIDInput identifies a user.
type UserIDInput struct {
	ID string `path:"id" doc:"User ID"`
}

// FavoriteTitleResponse is a favorite as listed on a profile.
type FavoriteTitleResponse struct {
	ID    string `json:"id" doc:"Favorite ID"`
	Title string `json:"title" doc:"Display title"`
}

// ProfileResponse is a user's public page.
type ProfileResponse struct {
	User      UserResponse            `json:"user" doc:"The user"`
	Favorites []FavoriteTitleResponse `json:"favorites" doc:"Favorites in the order they were saved"`
	Tags      []TagResponse           `json:"tags" doc:"Tags owned by the user or on their favorites"`
}

// ProfileOutput wraps the profile for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// UpdateUserRequest is the request body for updating an account. Omitted
// fields are left unchanged.
type UpdateUserRequest struct {
	Username        *string `json:"username,omitempty" maxLength:"50" doc:"New username"`
	Email           *string `json:"email,omitempty" maxLength:"254" doc:"New email"`
	FirstName       *string `json:"first_name,omitempty" maxLength:"100" doc:"First name"`
	LastName        *string `json:"last_name,omitempty" maxLength:"100" doc:"Last name"`
	ImageURL        *string `json:"image_url,omitempty" maxLength:"2048" doc:"Avatar URL"`
	ProfileImageURL *string `json:"profile_image_url,omitempty" maxLength:"2048" doc:"Profile banner URL"`
	CurrentPassword string  `json:"current_password,omitempty" maxLength:"1024" doc:"Required when changing the password"`
	NewPassword     string  `json:"new_password,omitempty" maxLength:"1024" doc:"New password"`
}

// UpdateUserInput wraps the update request for Huma.
type UpdateUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
	Body          UpdateUserRequest
}

// UserOutput wraps a single user for Huma.
type UserOutput struct {
	Body UserResponse
}

// DeleteUserInput identifies the account to delete.
type DeleteUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
}

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
	users, err := s.services.User.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListUsersOutput{}
	out.Body.Users = make([]UserResponse, len(users))
	for i, u := range users {
		out.Body.Users[i] = toUserResponse(u)
	}
	return out, nil
}

func (s *Server) handleGetUserProfile(ctx context.Context, input *UserIDInput) (*ProfileOutput, error) {
	p, err := s.services.User.Profile(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	favorites := make([]FavoriteTitleResponse, len(p.Favorites))
	for i, f := range p.Favorites {
		favorites[i] = FavoriteTitleResponse{ID: f.ID, Title: f.Title}
	}

	return &ProfileOutput{Body: ProfileResponse{
		User:      toUserResponse(p.User),
		Favorites: favorites,
		Tags:      toTagResponses(p.Tags),
	}}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	u, err := s.services.User.UpdateUser(ctx, userID, input.ID, service.UpdateUserRequest{
		Username:        input.Body.Username,
		Email:           input.Body.Email,
		FirstName:       input.Body.FirstName,
		LastName:        input.Body.LastName,
		ImageURL:        input.Body.ImageURL,
		ProfileImageURL: input.Body.ProfileImageURL,
		CurrentPassword: input.Body.CurrentPassword,
		NewPassword:     input.Body.NewPassword,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: toUserResponse(u)}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *DeleteUserInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.User.DeleteUser(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return message("Account deleted"), nil
}
