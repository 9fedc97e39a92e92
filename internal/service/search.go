package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	domainerrors "github.com/scripturesanctuary/sanctuary-server/internal/errors"
	"github.com/scripturesanctuary/sanctuary-server/internal/reference"
)

// SearchResult is a resolved passage.
type SearchResult struct {
	Title     string           `json:"title"`
	Reference domain.Reference `json:"reference"`
	Verses    []domain.Verse   `json:"verses"`
}

// SearchService resolves references into scripture text.
type SearchService struct {
	catalog   *catalog.Catalog
	resolver  Resolver
	formatter *reference.Formatter
	parser    *reference.Parser
	logger    *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(c *catalog.Catalog, resolver Resolver, logger *slog.Logger) *SearchService {
	return &SearchService{
		catalog:   c,
		resolver:  resolver,
		formatter: reference.NewFormatter(c),
		parser:    reference.NewParser(c),
		logger:    logger,
	}
}

// Search validates ref and resolves it. Any provider failure comes back as
// a not-found error.
func (s *SearchService) Search(ctx context.Context, ref domain.Reference) (*SearchResult, error) {
	if err := validateReference(s.catalog, ref); err != nil {
		return nil, err
	}

	verses, err := resolve(ctx, s.resolver, s.logger, ref)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Title:     s.formatter.Title(ref),
		Reference: ref,
		Verses:    verses,
	}, nil
}

// SearchText parses a passage like "John 3:16-18" and searches it in the
// given translation.
func (s *SearchService) SearchText(ctx context.Context, query, translation string) (*SearchResult, error) {
	ref, err := s.parser.Parse(query, translation)
	if err != nil {
		switch {
		case errors.Is(err, reference.ErrUnknownBook), errors.Is(err, domain.ErrInvalidReference):
			return nil, domainerrors.Validation(err.Error())
		case errors.Is(err, reference.ErrSyntax):
			return nil, domainerrors.Validationf("could not read %q; try a passage like \"John 3:16-18\"", query)
		}
		return nil, err
	}
	return s.Search(ctx, ref)
}

// Books returns the catalog's books.
func (s *SearchService) Books() []catalog.Book {
	return s.catalog.Books()
}

// Translations returns the supported translations.
func (s *SearchService) Translations() []catalog.Translation {
	return s.catalog.Translations()
}
