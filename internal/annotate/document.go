package annotate

import "strings"

// Segment is a maximal piece of Document.Text that is either a marker or source text.
type Segment struct {
	Text       string
	Marker     bool
	Occurrence int // only for markers
	Open       bool
}

// Segments splits Text into source and marker pieces, in order.
func (d *Document) Segments() []Segment {
	runes := []rune(d.Text)
	out := make([]Segment, 0, 2*len(d.Marks)+1)
	var pos uint32
	for _, m := range d.Marks {
		if m.Span.Start > pos {
			out = append(out, Segment{Text: string(runes[pos:m.Span.Start])})
		}
		out = append(out, Segment{
			Text:       string(runes[m.Span.Start:m.Span.End]),
			Marker:     true,
			Occurrence: m.Occurrence,
			Open:       m.Open,
		})
		pos = m.Span.End
	}
	if int(pos) < len(runes) {
		out = append(out, Segment{Text: string(runes[pos:])})
	}
	return out
}

// Strip removes every marker and returns the source text.
func (d *Document) Strip() string {
	var sb strings.Builder
	sb.Grow(len(d.Source))
	for _, seg := range d.Segments() {
		if !seg.Marker {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// Render rebuilds the document, passing source text through text and
// markers through marker. Writers use it to escape only the source text.
func (d *Document) Render(text func(string) string, marker func(Segment) string) string {
	var sb strings.Builder
	for _, seg := range d.Segments() {
		if seg.Marker {
			sb.WriteString(marker(seg))
		} else {
			sb.WriteString(text(seg.Text))
		}
	}
	return sb.String()
}
