// Package annotate re-inserts scanner results into the original text.
package annotate

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/atanasgiliev/hiatus-detector/internal/scan"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

// Marker produces the opening and closing text wrapped around an occurrence.
type Marker interface {
	Open(o scan.Occurrence) string
	Close(o scan.Occurrence) string
}

// Brackets is the plain-text marker: ⟦n:…⟧ with the 0-based index.
type Brackets struct{}

func (Brackets) Open(o scan.Occurrence) string  { return fmt.Sprintf("⟦%d:", o.Index) }
func (Brackets) Close(o scan.Occurrence) string { return "⟧" }

// Mark is one inserted marker inside Document.Text.
type Mark struct {
	Span       source.Span // rune offsets in Document.Text
	Occurrence int
	Open       bool
}

// Document is the annotated text together with the positions of every marker.
type Document struct {
	Source string
	Text   string
	Marks  []Mark
}

type patch struct {
	off  uint32
	text string
	occ  int
	open bool
}

// Annotate wraps every occurrence of text with marker output.
// Insertions are computed against the original offsets and applied in one
// pass. When spans overlap (a triple vowel run) the later span starts where
// the earlier one ends, so markers never nest. Such a later marker covers only
// part of its occurrence: "leía" becomes "l⟦0:eí⟧⟦1:a⟧",
// and a span lying wholly inside the previous one gets no marker. Records
// still carry the full span of every occurrence.
func Annotate(text string, occs []scan.Occurrence, marker Marker) *Document {
	if marker == nil {
		marker = Brackets{}
	}
	patches := make([]patch, 0, 2*len(occs))
	var prevEnd uint32
	for _, o := range occs {
		sp := o.Span()
		start := max(sp.Start, prevEnd)
		if start >= sp.End {
			continue
		}
		patches = append(patches,
			patch{off: start, text: marker.Open(o), occ: o.Index, open: true},
			patch{off: sp.End, text: marker.Close(o), occ: o.Index},
		)
		prevEnd = sp.End
	}
	// на одном смещении закрывающий маркер идёт раньше открывающего
	sort.SliceStable(patches, func(i, j int) bool {
		if patches[i].off != patches[j].off {
			return patches[i].off < patches[j].off
		}
		return !patches[i].open && patches[j].open
	})

	runes := []rune(text)
	total := runeLen(text)
	size := len(text)
	for _, p := range patches {
		size += len(p.text)
	}
	var sb strings.Builder
	sb.Grow(size)

	doc := &Document{Source: text}
	var pos, delta uint32
	for _, p := range patches {
		off := min(p.off, total)
		sb.WriteString(string(runes[pos:off]))
		pos = off
		n := runeLen(p.text)
		if n > 0 {
			doc.Marks = append(doc.Marks, Mark{
				Span:       source.Span{Start: off + delta, End: off + delta + n},
				Occurrence: p.occ,
				Open:       p.open,
			})
		}
		sb.WriteString(p.text)
		delta += n
	}
	sb.WriteString(string(runes[pos:]))
	doc.Text = sb.String()
	return doc
}

func runeLen(s string) uint32 {
	n, err := safecast.Conv[uint32](utf8.RuneCountInString(s))
	if err != nil {
		panic(fmt.Errorf("text too long: %w", err))
	}
	return n
}
