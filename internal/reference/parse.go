package reference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
)

var (
	// ErrSyntax means the input is not of the form "Book chapter[:verse[-verse]]".
	ErrSyntax = errors.New("reference: cannot parse passage")
	// ErrUnknownBook means the book name matched no catalog book.
	ErrUnknownBook = errors.New("reference: unknown book")
)

// passage is the parse tree of a single-chapter passage.
type passage struct {
	Book    string `@Book`
	Chapter int    `@Number`
	Start   *int   `( Sep @Number`
	End     *int   `  ( Dash @Number )? )?`
}

var passageLexer = lexer.MustSimple([]lexer.SimpleRule{
	// "Genesis", "1 John", "1John", "I Kings", "Song of Solomon", "Gen."
	{Name: "Book", Pattern: `(?:\d\s*)?[\p{L}]+(?:\s+[\p{L}]+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Sep", Pattern: `[:.]`},
	{Name: "Dash", Pattern: `[-\x{2013}\x{2014}]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var passageParser = participle.MustBuild[passage](
	participle.Lexer(passageLexer),
	participle.Elide("Whitespace"),
)

// Parser resolves free-text passages against a catalog.
type Parser struct {
	catalog *catalog.Catalog
}

// NewParser creates a Parser over c.
func NewParser(c *catalog.Catalog) *Parser {
	return &Parser{catalog: c}
}

// Parse turns input such as "John 3:16-18", "1 Cor 13:4" or "Ps 23" into a
// reference in the given translation. Verse numbers below 1 and reversed
// ranges fail with domain.ErrInvalidReference. The result is not checked
// against chapter or verse counts; see catalog.Catalog.ValidateReference.
func (p *Parser) Parse(input, translation string) (domain.Reference, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.Reference{}, fmt.Errorf("%w: empty input", ErrSyntax)
	}

	tree, err := passageParser.ParseString("", input)
	if err != nil {
		return domain.Reference{}, fmt.Errorf("%w %q: %v", ErrSyntax, input, err)
	}

	name := strings.TrimSuffix(tree.Book, ".")
	book, ok := p.catalog.LookupBook(name)
	if !ok {
		return domain.Reference{}, fmt.Errorf("%w: %q", ErrUnknownBook, name)
	}

	ref := domain.NewReference(translation, book.ID, tree.Chapter, 0, 0)
	ref.StartVerse = tree.Start
	ref.EndVerse = tree.End
	if err := ref.Validate(); err != nil {
		return domain.Reference{}, err
	}
	return ref, nil
}
