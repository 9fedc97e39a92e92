package catalog

import (
	"context"
	"log/slog"
	"slices"
)

// Source fetches catalog data from the provider.
type Source interface {
	FetchBooks(ctx context.Context) ([]Book, error)
	FetchTranslations(ctx context.Context) ([]Translation, error)
}

// Load builds the catalog from src. Translations are filtered to MostRead
// and kept in MostRead order. When the provider cannot be reached or returns
// an unusable book list, the embedded catalog fills the gap so the server can
// still start.
func Load(ctx context.Context, src Source, logger *slog.Logger) *Catalog {
	fallback := Default()

	books, err := src.FetchBooks(ctx)
	if err != nil {
		logger.Warn("Using embedded book catalog", "error", err)
		books = fallback.Books()
	}

	translations, err := src.FetchTranslations(ctx)
	if err != nil {
		logger.Warn("Using default translation list", "error", err)
		translations = fallback.Translations()
	}
	translations = filterMostRead(translations)
	if len(translations) == 0 {
		logger.Warn("Provider offered none of the supported translations, using defaults")
		translations = fallback.Translations()
	}

	c, err := New(books, translations)
	if err != nil {
		logger.Warn("Provider book list rejected, using embedded catalog", "error", err)
		c, _ = New(fallback.Books(), translations)
	}

	logger.Info("Catalog loaded", "books", len(c.books), "translations", len(c.translations))
	return c
}

// filterMostRead keeps translations whose code is in MostRead, ordered like
// MostRead and without duplicates.
func filterMostRead(in []Translation) []Translation {
	byCode := make(map[string]Translation, len(in))
	for _, t := range in {
		if _, seen := byCode[t.Code]; !seen && slices.Contains(MostRead, t.Code) {
			byCode[t.Code] = t
		}
	}
	out := make([]Translation, 0, len(byCode))
	for _, code := range MostRead {
		if t, ok := byCode[code]; ok {
			out = append(out, t)
		}
	}
	return out
}
