// Package anchor derives URL-safe anchors and output slugs from titles.
//
// The TOC builder and the heading renderer must agree on anchors for the
// same document, so both go through a shared Set when disambiguation is
// needed.
package anchor

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Slugify lowercases s and collapses non-alphanumeric runs into hyphens.
func Slugify(s string) string {
	return slug.Make(s)
}

// Set disambiguates anchors within a single document. The first occurrence
// of an anchor is returned as-is; later occurrences get an ordinal suffix
// (-2, -3, ...). Deterministic for a given pre-order heading sequence.
type Set struct {
	seen map[string]int
}

func NewSet() *Set {
	return &Set{seen: map[string]int{}}
}

// Anchor returns the disambiguated anchor for title.
func (s *Set) Anchor(title string) string {
	a := Slugify(title)
	s.seen[a]++
	if n := s.seen[a]; n > 1 {
		return fmt.Sprintf("%s-%d", a, n)
	}
	return a
}
