package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"github.com/atanasgiliev/hiatus-detector/internal/phon"
	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
	"github.com/atanasgiliev/hiatus-detector/internal/token"
)

// CheckTokenPartition verifies that tokens cover the document exactly:
// 1) spans are non-empty, gap-free and in order, starting at 0
// 2) each Text equals the document slice of its Span
// 3) the last span ends at the document end
// 4) no two neighbouring tokens share a kind
func CheckTokenPartition(sf *source.File, tokens []token.Token) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	var off uint32
	var sb strings.Builder
	for i, tok := range tokens {
		if tok.Span.Start != off {
			return fmt.Errorf("token %d starts at %d, want %d", i, tok.Span.Start, off)
		}
		if tok.Span.Empty() {
			return fmt.Errorf("token %d has empty span %v", i, tok.Span)
		}
		if got := sf.Slice(tok.Span); got != tok.Text {
			return fmt.Errorf("token %d text %q does not match source %q", i, tok.Text, got)
		}
		n, err := safecast.Conv[uint32](len([]rune(tok.Text)))
		if err != nil {
			return fmt.Errorf("token length overflow: %w", err)
		}
		if n != tok.Span.Len() {
			return fmt.Errorf("token %d: span length %d, text length %d", i, tok.Span.Len(), n)
		}
		if i > 0 && tokens[i-1].Kind == tok.Kind {
			return fmt.Errorf("tokens %d and %d are both %v", i-1, i, tok.Kind)
		}
		off = tok.Span.End
		sb.WriteString(tok.Text)
	}
	if off != sf.Len() {
		return fmt.Errorf("tokens end at %d, document length %d", off, sf.Len())
	}
	if sb.String() != sf.Text {
		return fmt.Errorf("token concatenation differs from the document")
	}
	return nil
}

// CheckUnitPartition verifies the sound units of every word token:
// units stay inside their token, offsets increase, and for a word whose
// units leave no gaps the unit texts rebuild the word.
// Without strict, words may contain unknown clusters and are only
// checked for order and containment.
func CheckUnitPartition(tokens []token.Token, units []phon.SoundUnit, strict bool) error {
	byToken := make(map[int][]phon.SoundUnit)
	for i, u := range units {
		if u.Token < 0 || u.Token >= len(tokens) {
			return fmt.Errorf("unit %d refers to token %d", i, u.Token)
		}
		if u.Kind == rules.None {
			return fmt.Errorf("unit %d has no class", i)
		}
		if i > 0 && units[i-1].Span.End > u.Span.Start {
			return fmt.Errorf("unit %d starts at %d before previous end %d", i, u.Span.Start, units[i-1].Span.End)
		}
		byToken[u.Token] = append(byToken[u.Token], u)
	}
	for idx, us := range byToken {
		tok := tokens[idx]
		if !tok.IsWord() {
			return fmt.Errorf("token %d (%v) owns sound units", idx, tok.Kind)
		}
		var sb strings.Builder
		for _, u := range us {
			if !tok.Span.Contains(u.Span) {
				return fmt.Errorf("unit %v lies outside token %v", u.Span, tok.Span)
			}
			sb.WriteString(u.Text)
		}
		if strict && sb.String() != tok.Text {
			return fmt.Errorf("units of %q concatenate to %q", tok.Text, sb.String())
		}
	}
	if strict {
		for i, tok := range tokens {
			if tok.IsWord() && len(byToken[i]) == 0 {
				return fmt.Errorf("word %q has no sound units", tok.Text)
			}
		}
	}
	return nil
}

// CheckRoundTrip compares a stripped annotation with its source and
// reports the first differing rune.
func CheckRoundTrip(original, stripped string) error {
	if original == stripped {
		return nil
	}
	a, b := []rune(original), []rune(stripped)
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return fmt.Errorf("round trip differs at rune %d: %q vs %q", i, a[i], b[i])
		}
	}
	return fmt.Errorf("round trip length differs: %d vs %d runes", len(a), len(b))
}
