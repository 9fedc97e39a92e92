package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	"github.com/scripturesanctuary/sanctuary-server/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns every tag ordered by name",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/tags",
		Summary:       "Create tag",
		Description:   "Creates a tag. Names are unique across all users, ignoring case.",
		Tags:          []string{"Tags"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTagScriptures",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag scriptures",
		Description: "Returns the tag with the first verse of every favorite carrying it, in the order they were tagged",
		Tags:        []string{"Tags"},
	}, s.handleGetTagScriptures)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Rename tag",
		Description: "Renames a tag you created",
		Tags:        []string{"Tags"},
		Security:    bearer,
	}, s.handleRenameTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag you created. Favorites that carried it are kept.",
		Tags:        []string{"Tags"},
		Security:    bearer,
	}, s.handleDeleteTag)
}

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Name      string    `json:"name" doc:"Tag name"`
	UserID    string    `json:"user_id" doc:"Creator's user ID"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

func toTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, UserID: t.UserID, CreatedAt: t.CreatedAt}
}

func toTagResponses(tags []*domain.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = toTagResponse(t)
	}
	return out
}

// ListTagsOutput wraps the tag list for Huma.
type ListTagsOutput struct {
	Body struct {
		Tags []TagResponse `json:"tags" doc:"Tags ordered by name"`
	}
}

// TagRequest is the request body for creating or renaming a tag.
type TagRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"50" doc:"Tag name"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Authorization string `header:"Authorization"`
	Body          TagRequest
}

// TagOutput wraps the tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// TagIDInput identifies a tag.
type TagIDInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// TagScriptureResponse is one favorite on a tag page.
type TagScriptureResponse struct {
	ID    string `json:"id" doc:"Favorite ID"`
	Title string `json:"title" doc:"Display title"`
	Verse int    `json:"verse" doc:"Number of the first verse shown"`
	Text  string `json:"text" doc:"First verse text; empty when the passage could not be fetched"`
	More  bool   `json:"more" doc:"Whether the passage continues past the first verse"`
}

// TagScripturesResponse is a tag page.
type TagScripturesResponse struct {
	Tag        TagResponse            `json:"tag" doc:"The tag"`
	Scriptures []TagScriptureResponse `json:"scriptures" doc:"Favorites carrying the tag"`
}

// TagScripturesOutput wraps the tag page for Huma.
type TagScripturesOutput struct {
	Body TagScripturesResponse
}

// RenameTagInput wraps the rename request for Huma.
type RenameTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Tag ID"`
	Body          TagRequest
}

// DeleteTagInput contains parameters for deleting a tag.
type DeleteTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Tag ID"`
}

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListTagsOutput{}
	out.Body.Tags = toTagResponses(tags)
	return out, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	t, err := s.services.Tag.CreateTag(ctx, userID, service.TagRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: toTagResponse(t)}, nil
}

func (s *Server) handleGetTagScriptures(ctx context.Context, input *TagIDInput) (*TagScripturesOutput, error) {
	page, err := s.services.Favorite.ScripturesForTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	scriptures := make([]TagScriptureResponse, len(page.Scriptures))
	for i, sc := range page.Scriptures {
		scriptures[i] = TagScriptureResponse{
			ID:    sc.ID,
			Title: sc.Title,
			Verse: sc.Verse,
			Text:  sc.Text,
			More:  sc.More,
		}
	}

	return &TagScripturesOutput{Body: TagScripturesResponse{
		Tag:        toTagResponse(page.Tag),
		Scriptures: scriptures,
	}}, nil
}

func (s *Server) handleRenameTag(ctx context.Context, input *RenameTagInput) (*TagOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	t, err := s.services.Tag.RenameTag(ctx, userID, input.ID, service.TagRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: toTagResponse(t)}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *DeleteTagInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.DeleteTag(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return message("Tag deleted"), nil
}
