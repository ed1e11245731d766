package scan

import (
	"fmt"

	"github.com/atanasgiliev/hiatus-detector/internal/phon"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

// Kind classifies where the two vowels of an occurrence sit.
type Kind uint8

const (
	Intra     Kind = iota // same word
	CrossWord             // neighbouring words on one line
	CrossLine             // last word of a line and first word of the next
)

func (k Kind) String() string {
	switch k {
	case Intra:
		return "intra-word"
	case CrossWord:
		return "interword"
	case CrossLine:
		return "across-line"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Tag returns the one-letter code used in tables: I, B or V.
func (k Kind) Tag() string {
	switch k {
	case Intra:
		return "I"
	case CrossWord:
		return "B"
	case CrossLine:
		return "V"
	default:
		return "?"
	}
}

// Occurrence is one detected hiatus.
type Occurrence struct {
	Index   int // 0-based, discovery order
	Left    phon.SoundUnit
	Right   phon.SoundUnit
	Kind    Kind
	Context string
	Line    uint32 // line of Left, 1-based
	EndLine uint32 // line of Right
}

// CrossWord reports whether the vowels belong to different words.
func (o Occurrence) CrossWord() bool { return o.Kind != Intra }

// Span covers both units and anything between them.
func (o Occurrence) Span() source.Span { return o.Left.Span.Cover(o.Right.Span) }

func (o Occurrence) String() string {
	return fmt.Sprintf("#%d %s %q+%q at %d-%d", o.Index, o.Kind.Tag(), o.Left.Text, o.Right.Text, o.Left.Span.Start, o.Right.Span.End)
}
