package rules

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Folder builds lookup keys for grapheme text.
// A Folder is not safe for concurrent use; create one per goroutine.
type Folder struct {
	caser cases.Caser
	strip transform.Transformer
}

func NewFolder() *Folder {
	return &Folder{
		caser: cases.Fold(),
		strip: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

// Key returns the case-folded NFC form of s.
// Precomposed and decomposed spellings of the same letter share one key.
func (f *Folder) Key(s string) string {
	return norm.NFC.String(f.caser.String(s))
}

// Base returns Key(s) with all nonspacing marks removed.
func (f *Folder) Base(s string) string {
	out, _, err := transform.String(f.strip, f.Key(s))
	if err != nil {
		return f.Key(s)
	}
	return out
}

// Marks lists the nonspacing marks of s in canonical order.
func Marks(s string) []rune {
	var out []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			out = append(out, r)
		}
	}
	return out
}
