package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/books",
		Summary:     "List books",
		Description: "Returns the 66 books of the canon in order with their chapter counts",
		Tags:        []string{"Catalog"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTranslations",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/translations",
		Summary:     "List translations",
		Description: "Returns the translations offered for search and favorites",
		Tags:        []string{"Catalog"},
	}, s.handleListTranslations)
}

// BookResponse is one catalog book.
type BookResponse struct {
	ID       int    `json:"id" doc:"1-based canonical book index"`
	Name     string `json:"name" doc:"Book name"`
	Chapters int    `json:"chapters" doc:"Number of chapters"`
}

// ListBooksOutput wraps the book list for Huma.
type ListBooksOutput struct {
	Body struct {
		Books []BookResponse `json:"books" doc:"Books in canonical order"`
	}
}

// TranslationResponse is one translation.
type TranslationResponse struct {
	Code string `json:"code" doc:"Short code, e.g. NIV"`
	Name string `json:"name" doc:"Display name"`
}

// ListTranslationsOutput wraps the translation list for Huma.
type ListTranslationsOutput struct {
	Body struct {
		Translations []TranslationResponse `json:"translations" doc:"Available translations"`
	}
}

func (s *Server) handleListBooks(_ context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books := s.services.Search.Books()

	out := &ListBooksOutput{}
	out.Body.Books = make([]BookResponse, len(books))
	for i, b := range books {
		out.Body.Books[i] = BookResponse{ID: b.ID, Name: b.Name, Chapters: b.Chapters}
	}
	return out, nil
}

func (s *Server) handleListTranslations(_ context.Context, _ *struct{}) (*ListTranslationsOutput, error) {
	translations := s.services.Search.Translations()

	out := &ListTranslationsOutput{}
	out.Body.Translations = make([]TranslationResponse, len(translations))
	for i, t := range translations {
		out.Body.Translations[i] = TranslationResponse{Code: t.Code, Name: t.DisplayName()}
	}
	return out, nil
}
