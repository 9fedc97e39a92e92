// Package reference turns references into display titles and parses
// free-text passages such as "John 3:16-18" into references.
package reference

import (
	"fmt"

	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
)

// Format builds the display title for ref given its book name:
//
//	"John 3:16-18 (NIV)", "John 3:16 (NIV)", "John 3:1-5 (NIV)", "John 3 (NIV)"
//
// An end verse without a start verse reads as a range from verse 1.
func Format(bookName string, ref domain.Reference) string {
	prefix := fmt.Sprintf("%s %d", bookName, ref.Chapter)

	switch {
	case ref.HasStart() && ref.HasEnd():
		return fmt.Sprintf("%s:%d-%d (%s)", prefix, ref.Start(), ref.End(), ref.Translation)
	case ref.HasStart():
		return fmt.Sprintf("%s:%d (%s)", prefix, ref.Start(), ref.Translation)
	case ref.HasEnd():
		return fmt.Sprintf("%s:1-%d (%s)", prefix, ref.End(), ref.Translation)
	default:
		return fmt.Sprintf("%s (%s)", prefix, ref.Translation)
	}
}

// Formatter formats references using a catalog for book names.
type Formatter struct {
	catalog *catalog.Catalog
}

// NewFormatter creates a Formatter over c.
func NewFormatter(c *catalog.Catalog) *Formatter {
	return &Formatter{catalog: c}
}

// Title returns the display title of ref. ref.Book must be in the catalog;
// an out-of-range book panics.
func (f *Formatter) Title(ref domain.Reference) string {
	return Format(f.catalog.BookName(ref.Book), ref)
}
