package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
)

func (s *Server) registerFavoriteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createFavorite",
		Method:        http.MethodPost,
		Path:          "/api/v1/favorites",
		Summary:       "Save favorite",
		Description:   "Saves a passage to your favorites",
		Tags:          []string{"Favorites"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFavorite",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Get favorite",
		Description: "Returns a favorite with its title, verses and tags",
		Tags:        []string{"Favorites"},
	}, s.handleGetFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Delete favorite",
		Description: "Deletes one of your favorites",
		Tags:        []string{"Favorites"},
		Security:    bearer,
	}, s.handleDeleteFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "setFavoriteTags",
		Method:      http.MethodPut,
		Path:        "/api/v1/favorites/{id}/tags",
		Summary:     "Replace favorite tags",
		Description: "Replaces every tag on one of your favorites. An unknown tag name fails the whole update; an empty list clears the tags.",
		Tags:        []string{"Favorites"},
		Security:    bearer,
	}, s.handleSetFavoriteTags)
}

// FavoriteResponse contains a saved favorite.
type FavoriteResponse struct {
	ID        string            `json:"id" doc:"Favorite ID"`
	UserID    string            `json:"user_id" doc:"Owner's user ID"`
	Title     string            `json:"title" doc:"Display title"`
	Reference ReferenceResponse `json:"reference" doc:"Saved reference"`
	CreatedAt time.Time         `json:"created_at" doc:"Creation time"`
}

// FavoriteDetailResponse is a favorite resolved for display.
type FavoriteDetailResponse struct {
	FavoriteResponse
	Created string          `json:"created" doc:"Creation time formatted for display, e.g. Tue Aug 06 2024, 3:04 PM"`
	Verses  []VerseResponse `json:"verses" doc:"Verses in ascending order"`
	Tags    []TagResponse   `json:"tags" doc:"Tags on the favorite"`
}

// CreateFavoriteInput wraps the create request for Huma.
type CreateFavoriteInput struct {
	Authorization string `header:"Authorization"`
	Body          ReferenceRequest
}

// FavoriteOutput wraps a favorite for Huma.
type FavoriteOutput struct {
	Body FavoriteResponse
}

// FavoriteIDInput identifies a favorite.
type FavoriteIDInput struct {
	ID string `path:"id" doc:"Favorite ID"`
}

// FavoriteDetailOutput wraps the favorite detail for Huma.
type FavoriteDetailOutput struct {
	Body FavoriteDetailResponse
}

// DeleteFavoriteInput identifies the favorite to delete.
type DeleteFavoriteInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Favorite ID"`
}

// SetFavoriteTagsRequest is the full replacement tag list.
type SetFavoriteTagsRequest struct {
	Tags []string `json:"tags" maxItems:"50" doc:"Tag names"`
}

// SetFavoriteTagsInput wraps the tag replacement for Huma.
type SetFavoriteTagsInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Favorite ID"`
	Body          SetFavoriteTagsRequest
}

// FavoriteTagsOutput wraps a favorite's tags for Huma.
type FavoriteTagsOutput struct {
	Body struct {
		Tags []TagResponse `json:"tags" doc:"Tags now on the favorite"`
	}
}

func toFavoriteResponse(f *domain.Favorite, title string) FavoriteResponse {
	return FavoriteResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		Title:     title,
		Reference: toReferenceResponse(f.Reference),
		CreatedAt: f.CreatedAt,
	}
}

func (s *Server) handleCreateFavorite(ctx context.Context, input *CreateFavoriteInput) (*FavoriteOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	fav, err := s.services.Favorite.CreateFavorite(ctx, userID, input.Body.toDomain())
	if err != nil {
		return nil, err
	}

	title := s.services.Favorite.FormatTitles([]*domain.Favorite{fav})[0].Title
	return &FavoriteOutput{Body: toFavoriteResponse(fav, title)}, nil
}

func (s *Server) handleGetFavorite(ctx context.Context, input *FavoriteIDInput) (*FavoriteDetailOutput, error) {
	d, err := s.services.Favorite.Detail(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	fav := &domain.Favorite{ID: d.ID, UserID: d.UserID, Reference: d.Reference, CreatedAt: d.CreatedAt}
	return &FavoriteDetailOutput{Body: FavoriteDetailResponse{
		FavoriteResponse: toFavoriteResponse(fav, d.Title),
		Created:          d.Created,
		Verses:           toVerseResponses(d.Verses),
		Tags:             toTagResponses(d.Tags),
	}}, nil
}

func (s *Server) handleDeleteFavorite(ctx context.Context, input *DeleteFavoriteInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Favorite.DeleteFavorite(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return message("Favorite deleted"), nil
}

func (s *Server) handleSetFavoriteTags(ctx context.Context, input *SetFavoriteTagsInput) (*FavoriteTagsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.SetFavoriteTags(ctx, userID, input.ID, input.Body.Tags)
	if err != nil {
		return nil, err
	}

	out := &FavoriteTagsOutput{}
	out.Body.Tags = toTagResponses(tags)
	return out, nil
}
