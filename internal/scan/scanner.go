package scan

import (
	"fmt"
	"unicode"

	"github.com/atanasgiliev/hiatus-detector/internal/diag"
	"github.com/atanasgiliev/hiatus-detector/internal/phon"
	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
	"github.com/atanasgiliev/hiatus-detector/internal/token"
)

// Scanner walks the sound units of one document.
type Scanner struct {
	file   *source.File
	tokens []token.Token
	table  *rules.Table
	folder *rules.Folder
	opts   Options
}

func New(file *source.File, tokens []token.Token, table *rules.Table, opts Options) *Scanner {
	if opts.MaxGap <= 0 {
		opts.MaxGap = DefaultMaxGap
	}
	if opts.ContextWidth < 0 {
		opts.ContextWidth = 0
	}
	return &Scanner{
		file:   file,
		tokens: tokens,
		table:  table,
		folder: rules.NewFolder(),
		opts:   opts,
	}
}

// Scan makes a single left-to-right pass and returns occurrences ordered by Left.Span.Start.
// Every adjacent vowel pair is reported, so a run of three vowels yields two
// occurrences sharing the middle unit.
func (s *Scanner) Scan(units []phon.SoundUnit) []Occurrence {
	var out []Occurrence
	for i := 1; i < len(units); i++ {
		left, right := units[i-1], units[i]
		if !left.IsVowel() || !right.IsVowel() {
			continue
		}
		var kind Kind
		if left.Token == right.Token {
			// неизвестный кластер между гласными тоже разрывает пару
			if left.Span.End != right.Span.Start {
				continue
			}
			kind = Intra
		} else {
			k, ok := s.crossKind(left, right)
			if !ok {
				continue
			}
			kind = k
		}
		out = append(out, s.occurrence(len(out), left, right, kind))
	}
	return out
}

func (s *Scanner) occurrence(index int, left, right phon.SoundUnit, kind Kind) Occurrence {
	return Occurrence{
		Index:   index,
		Left:    left,
		Right:   right,
		Kind:    kind,
		Context: s.context(left.Span.Cover(right.Span)),
		Line:    s.file.Line(left.Span.Start),
		EndLine: s.file.Line(right.Span.Start),
	}
}

// crossKind decides whether two vowels in different words form a hiatus.
func (s *Scanner) crossKind(left, right phon.SoundUnit) (Kind, bool) {
	if !s.opts.CrossWord && !s.opts.CrossLine {
		return 0, false
	}
	lw, rw := s.tokens[left.Token], s.tokens[right.Token]
	if left.Span.End != lw.Span.End || right.Span.Start != rw.Span.Start {
		return 0, false
	}

	newlines := 0
	for i := left.Token + 1; i < right.Token; i++ {
		if !s.tokens[i].IsSeparator() {
			return 0, false
		}
		newlines += s.tokens[i].Newlines()
	}

	gap := source.Span{File: s.file.ID, Start: left.Span.End, End: right.Span.Start}
	gapText := s.file.Slice(gap)
	for _, r := range gapText {
		if (unicode.IsLetter(r) || unicode.IsDigit(r)) && !s.table.IsElisionMark(string(r)) {
			return 0, false
		}
	}

	var kind Kind
	switch {
	case newlines == 0 && s.opts.CrossWord:
		kind = CrossWord
	case newlines == 1 && s.opts.CrossLine:
		kind = CrossLine
	default:
		return 0, false
	}

	if int(gap.Len()) > s.opts.MaxGap {
		s.report(diag.ScanGapTooLong, gap, fmt.Sprintf("%d runes between %q and %q exceed the gap limit of %d", gap.Len(), left.Text, right.Text, s.opts.MaxGap))
		return 0, false
	}

	if s.opts.Elision {
		if s.table.ElisionIn(gapText) {
			s.report(diag.ScanElisionSkipped, gap, fmt.Sprintf("elision mark between %q and %q", lw.Text, rw.Text))
			return 0, false
		}
		if s.table.Elidable(s.folder.Key(lw.Text)) {
			s.report(diag.ScanElisionSkipped, lw.Span, fmt.Sprintf("%q elides before a vowel", lw.Text))
			return 0, false
		}
	}
	return kind, true
}

// context returns up to ContextWidth runes on each side of sp.
func (s *Scanner) context(sp source.Span) string {
	w := uint32(s.opts.ContextWidth)
	start := uint32(0)
	if sp.Start > w {
		start = sp.Start - w
	}
	end := min(sp.End+w, s.file.Len())
	return s.file.Slice(source.Span{File: s.file.ID, Start: start, End: end})
}

func (s *Scanner) report(code diag.Code, sp source.Span, msg string) {
	if s.opts.Reporter != nil {
		diag.ReportInfo(s.opts.Reporter, code, sp, msg).Emit()
	}
}
