package domain

import (
	"fmt"
	"strings"
)

// Reference identifies a passage: a translation, a 1-based book index into
// the 66-book catalog, a chapter, and an optional inclusive verse range.
//
// StartVerse and EndVerse are independent: either, both or neither may be set.
// How each combination selects verses is described on scripture.SelectVerses.
type Reference struct {
	Translation string `json:"translation"`
	Book        int    `json:"book"`
	Chapter     int    `json:"chapter"`
	StartVerse  *int   `json:"start_verse,omitempty"`
	EndVerse    *int   `json:"end_verse,omitempty"`
}

// NewReference builds a Reference. Zero verse arguments mean "not set".
func NewReference(translation string, book, chapter, start, end int) Reference {
	ref := Reference{
		Translation: strings.ToUpper(strings.TrimSpace(translation)),
		Book:        book,
		Chapter:     chapter,
	}
	if start > 0 {
		ref.StartVerse = &start
	}
	if end > 0 {
		ref.EndVerse = &end
	}
	return ref
}

// HasStart reports whether a start verse is set.
func (r Reference) HasStart() bool { return r.StartVerse != nil }

// HasEnd reports whether an end verse is set.
func (r Reference) HasEnd() bool { return r.EndVerse != nil }

// Start returns the start verse or 0.
func (r Reference) Start() int {
	if r.StartVerse == nil {
		return 0
	}
	return *r.StartVerse
}

// End returns the end verse or 0.
func (r Reference) End() int {
	if r.EndVerse == nil {
		return 0
	}
	return *r.EndVerse
}

// Validate checks the shape of the reference. It does not know the catalog,
// so book and chapter upper bounds are checked by catalog.Catalog.
func (r Reference) Validate() error {
	switch {
	case r.Translation == "":
		return fmt.Errorf("%w: translation is required", ErrInvalidReference)
	case r.Book < 1:
		return fmt.Errorf("%w: book must be at least 1", ErrInvalidReference)
	case r.Chapter < 1:
		return fmt.Errorf("%w: chapter must be at least 1", ErrInvalidReference)
	case r.StartVerse != nil && *r.StartVerse < 1:
		return fmt.Errorf("%w: start verse must be at least 1", ErrInvalidReference)
	case r.EndVerse != nil && *r.EndVerse < 1:
		return fmt.Errorf("%w: end verse must be at least 1", ErrInvalidReference)
	case r.StartVerse != nil && r.EndVerse != nil && *r.StartVerse > *r.EndVerse:
		return fmt.Errorf("%w: start verse %d is after end verse %d", ErrInvalidReference, *r.StartVerse, *r.EndVerse)
	}
	return nil
}

// Verse is one verse of resolved scripture text.
// RawText is what the provider returned; Text has annotation markup removed.
type Verse struct {
	Number  int    `json:"verse"`
	RawText string `json:"-"`
	Text    string `json:"text"`
}
