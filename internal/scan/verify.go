package scan

import (
	"fmt"

	"github.com/atanasgiliev/hiatus-detector/internal/rules"
)

// Verify checks the scanner postcondition: indices run 0..n-1, both units
// are vowels, Left.Start strictly increases and Left precedes Right.
// Intra-word pairs must touch.
func Verify(occs []Occurrence) error {
	for i, o := range occs {
		if o.Index != i {
			return fmt.Errorf("occurrence %d has index %d", i, o.Index)
		}
		if o.Left.Kind != rules.Vowel || o.Right.Kind != rules.Vowel {
			return fmt.Errorf("occurrence %d pairs %s with %s", i, o.Left.Kind, o.Right.Kind)
		}
		if o.Left.Span.End > o.Right.Span.Start {
			return fmt.Errorf("occurrence %d: left %v overlaps right %v", i, o.Left.Span, o.Right.Span)
		}
		if o.Kind == Intra && o.Left.Span.End != o.Right.Span.Start {
			return fmt.Errorf("occurrence %d: intra-word units are not adjacent", i)
		}
		if o.Kind != Intra && o.Left.Token == o.Right.Token {
			return fmt.Errorf("occurrence %d: %s pair inside one word", i, o.Kind)
		}
		if i > 0 && occs[i-1].Left.Span.Start >= o.Left.Span.Start {
			return fmt.Errorf("occurrence %d starts at %d, not after %d", i, o.Left.Span.Start, occs[i-1].Left.Span.Start)
		}
	}
	return nil
}
