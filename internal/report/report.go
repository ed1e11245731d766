// Package report projects scanner occurrences into flat table records.
package report

import (
	"fmt"

	"github.com/atanasgiliev/hiatus-detector/internal/scan"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

// Record is one row of the occurrence table.
type Record struct {
	Index     int
	Start     uint32 // rune offset of the left vowel
	End       uint32 // rune offset after the right vowel
	Line      string // "3", or "3-4" for a pair across lines
	Matched   string // source text from Start to End
	CrossWord bool
	Kind      string // I, B or V
	Left      string
	Right     string
	Context   string
}

// Build returns one record per occurrence, in scan order.
func Build(file *source.File, occs []scan.Occurrence) []Record {
	records := make([]Record, 0, len(occs))
	for _, o := range occs {
		sp := o.Span()
		line := fmt.Sprint(o.Line)
		if o.Kind == scan.CrossLine && o.EndLine != o.Line {
			line = fmt.Sprintf("%d-%d", o.Line, o.EndLine)
		}
		records = append(records, Record{
			Index:     o.Index,
			Start:     sp.Start,
			End:       sp.End,
			Line:      line,
			Matched:   file.Slice(sp),
			CrossWord: o.CrossWord(),
			Kind:      o.Kind.Tag(),
			Left:      o.Left.Text,
			Right:     o.Right.Text,
			Context:   o.Context,
		})
	}
	return records
}

// Summary counts records per kind.
type Summary struct {
	Total, Intra, CrossWord, CrossLine int
}

func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Kind {
		case scan.Intra.Tag():
			s.Intra++
		case scan.CrossWord.Tag():
			s.CrossWord++
		case scan.CrossLine.Tag():
			s.CrossLine++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d hiatus occurrences (I %d, B %d, V %d)", s.Total, s.Intra, s.CrossWord, s.CrossLine)
}
