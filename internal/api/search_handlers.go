package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	"github.com/scripturesanctuary/sanctuary-server/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchScripture",
		Method:      http.MethodPost,
		Path:        "/api/v1/search",
		Summary:     "Look up a passage",
		Description: "Resolves a translation, book, chapter and optional verse range into cleaned verse text",
		Tags:        []string{"Search"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchScriptureText",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Look up a passage by text",
		Description: `Parses a reference such as "John 3:16-18" or "1 Cor 13" and resolves it`,
		Tags:        []string{"Search"},
	}, s.handleSearchText)
}

// ReferenceRequest selects a passage. Verses are optional: start only means
// that single verse, end only means verses 1 through end, neither means the
// whole chapter.
type ReferenceRequest struct {
	Translation string `json:"translation" minLength:"1" maxLength:"20" example:"NIV" doc:"Translation code"`
	Book        int    `json:"book" minimum:"1" maximum:"66" example:"43" doc:"1-based canonical book index"`
	Chapter     int    `json:"chapter" minimum:"1" example:"3" doc:"Chapter number"`
	StartVerse  *int   `json:"start_verse,omitempty" minimum:"1" example:"16" doc:"First verse"`
	EndVerse    *int   `json:"end_verse,omitempty" minimum:"1" example:"18" doc:"Last verse, inclusive"`
}

func (r ReferenceRequest) toDomain() domain.Reference {
	ref := domain.NewReference(r.Translation, r.Book, r.Chapter, 0, 0)
	ref.StartVerse = r.StartVerse
	ref.EndVerse = r.EndVerse
	return ref
}

// ReferenceResponse echoes a normalized reference.
type ReferenceResponse struct {
	Translation string `json:"translation" doc:"Translation code"`
	Book        int    `json:"book" doc:"1-based canonical book index"`
	Chapter     int    `json:"chapter" doc:"Chapter number"`
	StartVerse  *int   `json:"start_verse,omitempty" doc:"First verse"`
	EndVerse    *int   `json:"end_verse,omitempty" doc:"Last verse, inclusive"`
}

func toReferenceResponse(ref domain.Reference) ReferenceResponse {
	return ReferenceResponse{
		Translation: ref.Translation,
		Book:        ref.Book,
		Chapter:     ref.Chapter,
		StartVerse:  ref.StartVerse,
		EndVerse:    ref.EndVerse,
	}
}

// VerseResponse is one cleaned verse.
type VerseResponse struct {
	Verse int    `json:"verse" doc:"Verse number"`
	Text  string `json:"text" doc:"Verse text without annotation markup"`
}

func toVerseResponses(verses []domain.Verse) []VerseResponse {
	out := make([]VerseResponse, len(verses))
	for i, v := range verses {
		out[i] = VerseResponse{Verse: v.Number, Text: v.Text}
	}
	return out
}

// SearchResponse is a resolved passage.
type SearchResponse struct {
	Title     string            `json:"title" doc:"Display title, e.g. John 3:16-18 (NIV)"`
	Reference ReferenceResponse `json:"reference" doc:"Normalized reference"`
	Verses    []VerseResponse   `json:"verses" doc:"Verses in ascending order"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// SearchInput wraps the search request for Huma.
type SearchInput struct {
	Body ReferenceRequest
}

// SearchTextInput contains parameters for a free-text lookup.
type SearchTextInput struct {
	Query       string `query:"q" required:"true" minLength:"1" maxLength:"100" example:"John 3:16-18" doc:"Passage reference"`
	Translation string `query:"translation" default:"NIV" maxLength:"20" doc:"Translation code"`
}

func toSearchOutput(r *service.SearchResult) *SearchOutput {
	return &SearchOutput{Body: SearchResponse{
		Title:     r.Title,
		Reference: toReferenceResponse(r.Reference),
		Verses:    toVerseResponses(r.Verses),
	}}
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := s.services.Search.Search(ctx, input.Body.toDomain())
	if err != nil {
		return nil, err
	}
	return toSearchOutput(result), nil
}

func (s *Server) handleSearchText(ctx context.Context, input *SearchTextInput) (*SearchOutput, error) {
	result, err := s.services.Search.SearchText(ctx, input.Query, input.Translation)
	if err != nil {
		return nil, err
	}
	return toSearchOutput(result), nil
}
