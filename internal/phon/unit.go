package phon

import (
	"fmt"

	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

// SoundUnit is one classified grapheme cluster sequence inside a word.
type SoundUnit struct {
	Kind  rules.Class
	Text  string
	Span  source.Span
	Token int // index of the owning word token
}

func (u SoundUnit) IsVowel() bool { return u.Kind == rules.Vowel }

func (u SoundUnit) String() string {
	return fmt.Sprintf("%c %q %d-%d", u.Kind.Letter(), u.Text, u.Span.Start, u.Span.End)
}
