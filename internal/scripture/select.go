package scripture

import (
	"fmt"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
)

// SelectVerses picks verses out of a whole chapter according to the
// reference's verse fields (1-based, inclusive):
//
//	start and end  ->  [start, end]
//	start only     ->  [start]
//	end only       ->  [1, end]
//	neither        ->  the whole chapter
//
// chapter[i] holds verse i+1. A range reaching past the last verse returns
// ErrVerseOutOfRange. The returned slice is freshly allocated.
func SelectVerses(chapter []domain.Verse, ref domain.Reference) ([]domain.Verse, error) {
	if len(chapter) == 0 {
		return nil, fmt.Errorf("%w: chapter %d has no verses", ErrVerseOutOfRange, ref.Chapter)
	}

	first, last := 1, len(chapter)
	switch {
	case ref.HasStart() && ref.HasEnd():
		first, last = ref.Start(), ref.End()
	case ref.HasStart():
		first, last = ref.Start(), ref.Start()
	case ref.HasEnd():
		last = ref.End()
	}

	if first < 1 || last > len(chapter) || first > last {
		return nil, fmt.Errorf("%w: verses %d-%d requested, chapter has %d", ErrVerseOutOfRange, first, last, len(chapter))
	}

	out := make([]domain.Verse, last-first+1)
	copy(out, chapter[first-1:last])
	return out, nil
}
