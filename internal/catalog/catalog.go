// Package catalog holds the immutable list of bible books and supported
// translations. A Catalog is built once at startup and passed to the
// components that need it; nothing in it changes afterwards.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
)

// BookCount is the number of books in the protestant canon used by the provider.
const BookCount = 66

//go:embed books.json
var embeddedBooks []byte

// MostRead lists the translation codes offered to users, in display order.
var MostRead = []string{"NIV", "KJV", "NKJV", "ESV", "NLT", "NASB", "MSG"}

// Book is one book of the catalog. ID is the 1-based canonical position.
type Book struct {
	ID         int    `json:"bookid"`
	Name       string `json:"name"`
	ChronOrder int    `json:"chronorder,omitempty"`
	Chapters   int    `json:"chapters"`
}

// Translation is a bible translation offered by the provider.
type Translation struct {
	Code     string `json:"short_name"`
	FullName string `json:"full_name"`
}

// displayOverrides replaces provider full names that read poorly.
var displayOverrides = map[string]string{
	"KJV": "King James Version, 1769",
}

// DisplayName returns the label shown to users.
func (t Translation) DisplayName() string {
	if name, ok := displayOverrides[t.Code]; ok {
		return name
	}
	if t.FullName == "" {
		return t.Code
	}
	return t.FullName
}

// Catalog is an immutable set of books and translations.
type Catalog struct {
	books        []Book
	translations []Translation
	byKey        map[string]int
	byCode       map[string]Translation
}

// New validates and indexes books and translations. Books must number
// BookCount and carry IDs 1..BookCount; they are sorted by ID.
func New(books []Book, translations []Translation) (*Catalog, error) {
	if len(books) != BookCount {
		return nil, fmt.Errorf("catalog: expected %d books, got %d", BookCount, len(books))
	}

	sorted := slices.Clone(books)
	slices.SortFunc(sorted, func(a, b Book) int { return a.ID - b.ID })

	c := &Catalog{
		books:        sorted,
		translations: slices.Clone(translations),
		byKey:        make(map[string]int, BookCount+len(bookAliases)),
		byCode:       make(map[string]Translation, len(translations)),
	}

	for i, b := range sorted {
		if b.ID != i+1 {
			return nil, fmt.Errorf("catalog: book %q has id %d, want %d", b.Name, b.ID, i+1)
		}
		if b.Chapters < 1 {
			return nil, fmt.Errorf("catalog: book %q has no chapters", b.Name)
		}
		c.byKey[normalizeName(b.Name)] = b.ID
	}
	for alias, bookID := range bookAliases {
		if _, taken := c.byKey[alias]; !taken {
			c.byKey[alias] = bookID
		}
	}

	for _, t := range translations {
		c.byCode[strings.ToUpper(t.Code)] = t
	}

	return c, nil
}

// Default returns the catalog built from the embedded book list and the
// most-read translations. It is used when the provider catalog is unreachable.
func Default() *Catalog {
	var books []Book
	if err := json.Unmarshal(embeddedBooks, &books); err != nil {
		panic(fmt.Sprintf("catalog: embedded books.json: %v", err))
	}
	c, err := New(books, defaultTranslations())
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded books.json: %v", err))
	}
	return c
}

func defaultTranslations() []Translation {
	names := map[string]string{
		"NIV":  "New International Version, 1984",
		"KJV":  "King James Version 1769",
		"NKJV": "New King James Version, 1982",
		"ESV":  "English Standard Version 2001, 2016",
		"NLT":  "New Living Translation, 2015",
		"NASB": "New American Standard Bible (1995)",
		"MSG":  "The Message, 2002",
	}
	out := make([]Translation, 0, len(MostRead))
	for _, code := range MostRead {
		out = append(out, Translation{Code: code, FullName: names[code]})
	}
	return out
}

// Books returns a copy of the books in canonical order.
func (c *Catalog) Books() []Book {
	return slices.Clone(c.books)
}

// Translations returns a copy of the supported translations.
func (c *Catalog) Translations() []Translation {
	return slices.Clone(c.translations)
}

// Book returns the book with the given 1-based ID.
func (c *Catalog) Book(bookID int) (Book, bool) {
	if bookID < 1 || bookID > len(c.books) {
		return Book{}, false
	}
	return c.books[bookID-1], true
}

// BookName returns the name of the book with the given 1-based ID.
// An out-of-range ID is a programming error and panics; references are
// validated before they reach formatting.
func (c *Catalog) BookName(bookID int) string {
	b, ok := c.Book(bookID)
	if !ok {
		panic(fmt.Sprintf("catalog: book index %d out of range [1,%d]", bookID, len(c.books)))
	}
	return b.Name
}

// Translation looks up a translation by code, case-insensitively.
func (c *Catalog) Translation(code string) (Translation, bool) {
	t, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return t, ok
}

// LookupBook resolves a user-typed book name. Exact names, common
// abbreviations and unambiguous prefixes ("Gen", "1 Cor") are accepted.
func (c *Catalog) LookupBook(name string) (Book, bool) {
	key := normalizeName(name)
	if key == "" {
		return Book{}, false
	}
	if bookID, ok := c.byKey[key]; ok {
		return c.books[bookID-1], true
	}

	match := 0
	for _, b := range c.books {
		if strings.HasPrefix(normalizeName(b.Name), key) {
			if match != 0 {
				return Book{}, false
			}
			match = b.ID
		}
	}
	if match == 0 {
		return Book{}, false
	}
	return c.books[match-1], true
}

// ValidateReference checks ref against the catalog: the shape rules of
// domain.Reference plus book range, chapter count and known translation.
func (c *Catalog) ValidateReference(ref domain.Reference) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	b, ok := c.Book(ref.Book)
	if !ok {
		return fmt.Errorf("%w: book %d is not in the catalog", domain.ErrInvalidReference, ref.Book)
	}
	if ref.Chapter > b.Chapters {
		return fmt.Errorf("%w: %s has %d chapters", domain.ErrInvalidReference, b.Name, b.Chapters)
	}
	if _, ok := c.Translation(ref.Translation); !ok {
		return fmt.Errorf("%w: unknown translation %q", domain.ErrInvalidReference, ref.Translation)
	}
	return nil
}

// normalizeName folds case, strips diacritics and drops everything that is
// not a letter or digit, so "1 John", "1john" and "I John" variants compare
// on the same key.
func normalizeName(s string) string {
	s = norm.NFKD.String(cases.Fold().String(strings.TrimSpace(s)))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range romanPrefix(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// romanPrefix rewrites a leading "i ", "ii " or "iii " to its digit.
func romanPrefix(s string) string {
	for _, p := range []struct{ roman, digit string }{{"iii ", "3"}, {"ii ", "2"}, {"i ", "1"}} {
		if strings.HasPrefix(s, p.roman) {
			return p.digit + s[len(p.roman):]
		}
	}
	return s
}

// bookAliases maps normalized abbreviations that prefix matching cannot
// resolve on its own.
var bookAliases = map[string]int{
	"songofsongs":    22,
	"canticles":      22,
	"qoheleth":       21,
	"phil":           50,
	"php":            50,
	"phm":            57,
	"jdg":            7,
	"dt":             5,
	"1kgs":           11,
	"2kgs":           12,
	"mt":             40,
	"mk":             41,
	"lk":             42,
	"jn":             43,
	"jhn":            43,
	"actsofapostles": 44,
	"1jn":            62,
	"2jn":            63,
	"3jn":            64,
	"revelations":    66,
	"apocalypse":     66,
}
